// Package audit stamps creation and modification metadata on entities that
// embed models.Auditable. The acting principal travels in the context.
package audit

import (
	"context"
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const System = "SYSTEM"

type auditorKey struct{}

func WithAuditor(ctx context.Context, username string) context.Context {
	if username == "" {
		return ctx
	}
	return context.WithValue(ctx, auditorKey{}, username)
}

// AuditorFrom returns the username stored by WithAuditor, or System.
func AuditorFrom(ctx context.Context) string {
	if ctx == nil {
		return System
	}
	if v, ok := ctx.Value(auditorKey{}).(string); ok && v != "" {
		return v
	}
	return System
}

type Plugin struct {
	Now func() time.Time
}

func (p *Plugin) Name() string { return "audit" }

func (p *Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:before_create", p.beforeCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("audit:before_update", p.beforeUpdate)
}

func (p *Plugin) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func (p *Plugin) beforeCreate(db *gorm.DB) {
	s := db.Statement
	if s.Schema == nil {
		return
	}
	by := s.Schema.LookUpField("CreatedBy")
	at := s.Schema.LookUpField("CreationDate")
	if by == nil || at == nil {
		return
	}

	who := AuditorFrom(s.Context)
	now := p.now()

	rv := s.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := stamp(s.Context, rv.Index(i), by, at, who, now); err != nil {
				_ = db.AddError(err)
				return
			}
		}
	case reflect.Struct:
		if err := stamp(s.Context, rv, by, at, who, now); err != nil {
			_ = db.AddError(err)
		}
	}
}

func stamp(ctx context.Context, rv reflect.Value, by, at *schema.Field, who string, now time.Time) error {
	rv = reflect.Indirect(rv)
	if _, zero := by.ValueOf(ctx, rv); zero {
		if err := by.Set(ctx, rv, who); err != nil {
			return err
		}
	}
	if _, zero := at.ValueOf(ctx, rv); zero {
		return at.Set(ctx, rv, now)
	}
	return nil
}

func (p *Plugin) beforeUpdate(db *gorm.DB) {
	s := db.Statement
	if s.Schema == nil || s.Schema.LookUpField("LastModifiedBy") == nil {
		return
	}
	who, now := AuditorFrom(s.Context), p.now()
	s.SetColumn("LastModifiedBy", &who, true)
	s.SetColumn("LastModifiedDate", &now, true)
}
