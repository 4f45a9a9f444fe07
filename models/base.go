package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID returns a fresh primary key for records created outside postgres defaults
func newID() string {
	return uuid.NewString()
}

// assignID sets id when it is still empty
func assignID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

// BeforeCreate fills in the primary key
func (u *User) BeforeCreate(_ *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// BeforeCreate fills in the primary key
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// BeforeCreate fills in the primary key
func (m *ProjectMember) BeforeCreate(_ *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// BeforeCreate fills in the primary key
func (i *Idea) BeforeCreate(_ *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// BeforeCreate fills in the primary key
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// BeforeSave gives every new section an id, on create and on update
func (a *Application) BeforeSave(_ *gorm.DB) error {
	for idx := range a.Sections {
		assignID(&a.Sections[idx].ID)
	}
	return nil
}
