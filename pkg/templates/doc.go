// Package templates defines the email template model and its stores.
//
// A Template carries subject, body, recipients and attachments that are inserted into
// a compose draft. Bodies are HTML and are sanitized on every save.
//
// # Save semantics
//
// Every Store implements create-or-merge:
//
//   - a template without an id is created with a fresh ULID;
//   - a template whose id exists is merged onto the stored record, keeping its
//     creation time and usage telemetry;
//   - an unknown id is inserted as given, which lets imports keep their ids.
//
// Save validates before writing. A blank name fails with ErrEmptyName and a name
// containing < or > with ErrInvalidName, since such names could not survive inside
// a sanitized {{template:...}} token. Each attachment payload is decoded; payloads
// that are not base64, are empty or exceed MaxAttachmentSize fail with
// ErrInvalidAttachment. Every validation error also matches ErrInvalidTemplate.
// The MIME type of an attachment is normalized, or detected from its content when
// missing, and Size is set to the decoded length.
//
// # Backends
//
//	store := templates.NewMemoryStore()
//	store := templates.NewPostgresStore(pool)   // schema from Migrations()
//	store := templates.NewRedisStore(client, "templatewing:templates")
//
// The Postgres store runs each Save in a transaction that locks the existing row.
// The Redis store keeps the list as one JSON value and retries WATCH/MULTI
// transactions, failing with ErrConflict after repeated contention.
//
// All stores list templates in insertion order; include-by-name resolution relies on it.
//
// # Helpers
//
// ForIdentity filters templates by their visibility list, Categories returns the
// sorted distinct categories and Duplicate prepares a copy for saving under a new id.
package templates
