package site

import "time"

// Record mirrors one row in the `sites` table.  Publication state is the
// IsPublished flag plus the timestamp of the most recent publish.
type Record struct {
	ID          string     `db:"id" json:"id"`
	OwnerID     string     `db:"owner_id" json:"ownerId"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Domain      string     `db:"domain" json:"domain"`
	TemplateID  string     `db:"template_id" json:"templateId"`
	IsPublished bool       `db:"is_published" json:"isPublished"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
