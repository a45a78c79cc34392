package models

// AttachmentSource distinguishes direct uploads from files linked out of
// Google Drive.
type AttachmentSource string

const (
	AttachmentFile        AttachmentSource = "file"
	AttachmentGoogleDrive AttachmentSource = "google-drive"
)

// Attachment is opaque file metadata hanging off a task. The dashboard
// never inspects the content behind the URL.
type Attachment struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	URL       string           `json:"url"`
	Source    AttachmentSource `json:"source"`
	MimeType  string           `json:"mime_type,omitempty"`
	SizeBytes int64            `json:"size_bytes,omitempty"`
}
