package core

import (
	"time"
)

// RequestContext carries the caller identity for one inbound request.
// The core never mutates it. An empty Owner means the caller acts for
// no tenant (unauthenticated or system context).
type RequestContext struct {
	Requester string   `json:"requester"`
	Owner     string   `json:"owner"`
	IsAdmin   bool     `json:"isAdmin"`
	Roles     []string `json:"roles"`
}

const (
	VisibilityPublic    = "public"
	VisibilityPrivate   = "private"
	VisibilityShared    = "shared"
	VisibilityCommunity = "community"
)

const (
	StatusQueued  = "queued"
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusSuccess    = "success"
	TaskStatusFailure    = "failure"
)

type Image struct {
	ID         string            `json:"id" gorm:"primaryKey;type:char(20)"`
	Name       string            `json:"name" gorm:"type:text"`
	Owner      string            `json:"owner" gorm:"type:text;index"`
	Visibility string            `json:"visibility" gorm:"type:text;default:'shared'"`
	Status     string            `json:"status" gorm:"type:text;default:'queued'"`
	Members    []string          `json:"members" gorm:"serializer:json"`
	Properties map[string]string `json:"properties" gorm:"serializer:json"`
	Locations  []string          `json:"locations" gorm:"serializer:json"`
	CDate      time.Time         `json:"cdate" gorm:"autoCreateTime"`
	MDate      time.Time         `json:"mdate" gorm:"autoUpdateTime"`

	// Member is derived at read time by the authorization layer:
	// the reader's tenant when they access an image they do not own.
	Member string `json:"member,omitempty" gorm:"-"`
}

type MetadefNamespace struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Namespace   string    `json:"namespace" gorm:"type:text;uniqueIndex"`
	DisplayName string    `json:"displayName" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	Owner       string    `json:"owner" gorm:"type:text;index"`
	Visibility  string    `json:"visibility" gorm:"type:text;default:'private'"`
	Protected   bool      `json:"protected"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

type MetadefObject struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	NamespaceID string    `json:"namespaceId" gorm:"type:char(20);index"`
	Name        string    `json:"name" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	Owner       string    `json:"owner" gorm:"type:text;index"`
	Schema      string    `json:"schema" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

type MetadefProperty struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	NamespaceID string    `json:"namespaceId" gorm:"type:char(20);index"`
	Name        string    `json:"name" gorm:"type:text"`
	Type        string    `json:"type" gorm:"type:text"`
	Owner       string    `json:"owner" gorm:"type:text;index"`
	Schema      string    `json:"schema" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

type MetadefResourceType struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name        string    `json:"name" gorm:"type:text;uniqueIndex"`
	NamespaceID string    `json:"namespaceId" gorm:"type:char(20);index"`
	Owner       string    `json:"owner" gorm:"type:text;index"`
	Protected   bool      `json:"protected"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

type MetadefTag struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	NamespaceID string    `json:"namespaceId" gorm:"type:char(20);index"`
	Name        string    `json:"name" gorm:"type:text"`
	Owner       string    `json:"owner" gorm:"type:text;index"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

type Task struct {
	ID      string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Type    string    `json:"type" gorm:"type:text"`
	Status  string    `json:"status" gorm:"type:text;default:'pending'"`
	Owner   string    `json:"owner" gorm:"type:text;index"`
	Input   string    `json:"input" gorm:"type:json;default:'{}'"`
	Result  string    `json:"result" gorm:"type:json;default:'{}'"`
	Message string    `json:"message" gorm:"type:text"`
	CDate   time.Time `json:"cdate" gorm:"autoCreateTime"`
	MDate   time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Event is the lifecycle record the notification layer publishes on
// every successful mutation.
type Event struct {
	Kind       string    `json:"kind"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId"`
	Owner      string    `json:"owner"`
	Resource   any       `json:"resource,omitempty"`
	CDate      time.Time `json:"cdate"`
}
