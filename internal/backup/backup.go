package backup

import (
	"time"

	"github.com/tranyenminhbd/docuflow/internal/activity"
	"github.com/tranyenminhbd/docuflow/internal/category"
	"github.com/tranyenminhbd/docuflow/internal/department"
	"github.com/tranyenminhbd/docuflow/internal/document"
	"github.com/tranyenminhbd/docuflow/internal/role"
	"github.com/tranyenminhbd/docuflow/internal/user"
)

// UserRecord is the backup shape of a user. Unlike the API shape it carries
// the password hash, otherwise a restored system would lock everyone out.
type UserRecord struct {
	user.User
	PasswordHash string `json:"password_hash"`
}

func toUserRecord(u user.User) UserRecord {
	return UserRecord{User: u, PasswordHash: u.PasswordHash}
}

func (r UserRecord) toUser() user.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return u
}

// ConfigRecord is the backup shape of the app configuration.
type ConfigRecord struct {
	CompanyName   string `json:"company_name"`
	ThemeColor    string `json:"theme_color"`
	LogoURL       string `json:"logo_url"`
	DeveloperName string `json:"developer_name"`
	DeveloperURL  string `json:"developer_url"`
}

// Data is the export envelope. On restore, Documents and Config are
// required; ActivityLog is optional so exports from before the log existed
// still import cleanly.
type Data struct {
	Version     int                     `json:"version"`
	ExportedAt  time.Time               `json:"exported_at"`
	Documents   *[]document.Document    `json:"documents"`
	Categories  []category.Category     `json:"categories"`
	Departments []department.Department `json:"departments"`
	Roles       []role.Role             `json:"roles"`
	Users       []UserRecord            `json:"users"`
	Config      *ConfigRecord           `json:"config"`
	ActivityLog []activity.Entry        `json:"activityLog,omitempty"`
}

// CurrentVersion identifies the export format produced by Export.
const CurrentVersion = 2

type ServiceAPI interface {
	Export() (*Data, error)
	Restore(actorName string, raw []byte) error
	Reset(actorName string) error
}
