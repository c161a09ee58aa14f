package document

import (
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Remote records arrive with inconsistent field naming: newer API builds
// emit snake_case, older ones camelCase, and some documents carry "name"
// instead of "title". Each logical field therefore has a fixed, ordered key
// list; the first key present wins. This replaces ad-hoc per-call probing
// with one documented schema.
var (
	keysID      = []string{"id"}
	keysTitle   = []string{"title", "name"}
	keysType    = []string{"file_type", "fileType"}
	keysSize    = []string{"file_size", "fileSize"}
	keysCreated = []string{"created_at", "createdAt"}
	keysUpdated = []string{"updated_at", "updatedAt"}
	keysTags    = []string{"tags"}
)

// overrideByExt maps extensions whose remote type hint is known to be
// unreliable. These win over the hint unconditionally.
var overrideByExt = map[string]Type{
	"xls":  TypeExcel,
	"xlsx": TypeExcel,
	"xlsm": TypeExcel,
	"doc":  TypeWord,
	"docx": TypeWord,
	"ppt":  TypePowerPoint,
	"pptx": TypePowerPoint,
	"csv":  TypeCSV,
	"ods":  TypeCSV,
}

// genericByExt is the low-priority extension table, consulted only when the
// remote hint resolved to nothing.
var genericByExt = map[string]Type{
	"pdf":  TypePDF,
	"png":  TypeImage,
	"jpg":  TypeImage,
	"jpeg": TypeImage,
	"gif":  TypeImage,
	"webp": TypeImage,
	"svg":  TypeImage,
	"bmp":  TypeImage,
	"txt":  TypeText,
	"md":   TypeText,
	"rtf":  TypeText,
	"zip":  TypeArchive,
	"rar":  TypeArchive,
	"7z":   TypeArchive,
	"tar":  TypeArchive,
	"gz":   TypeArchive,
}

// MapRemote normalizes a raw remote document record into the canonical
// local form. Pure function: the input is retained verbatim as RemoteRef
// and never mutated.
func MapRemote(raw json.RawMessage) *Document {
	doc := &Document{
		RemoteRef: raw,
	}

	if r := field(raw, keysID); r.Exists() {
		doc.ID = r.String()
	}

	doc.Name = field(raw, keysTitle).String()
	if doc.Name == "" {
		doc.Name = "Untitled Document"
	}

	if r := field(raw, keysSize); r.Exists() && r.Type == gjson.Number {
		size := r.Int()
		doc.SizeBytes = &size
	}

	doc.CreatedAt = parseTimestamp(field(raw, keysCreated).String())
	doc.UpdatedAt = parseTimestamp(field(raw, keysUpdated).String())

	if r := field(raw, keysTags); r.IsArray() {
		for _, tag := range r.Array() {
			doc.Tags = append(doc.Tags, tag.String())
		}
	}

	doc.Type = ResolveType(doc.Name, field(raw, keysType).String())

	return doc
}

// field returns the first existing key from keys in the raw record.
func field(raw json.RawMessage, keys []string) gjson.Result {
	for _, key := range keys {
		if r := gjson.GetBytes(raw, key); r.Exists() {
			return r
		}
	}

	return gjson.Result{}
}

// DisplayTimestamp picks the timestamp shown for a document: most recent
// update, falling back to creation time, falling back to now.
func DisplayTimestamp(doc *Document, now time.Time) time.Time {
	if doc.UpdatedAt != nil {
		return *doc.UpdatedAt
	}

	if doc.CreatedAt != nil {
		return *doc.CreatedAt
	}

	return now
}

// timestampLayouts are the remote timestamp formats seen in the wild. The
// zone-less layout is treated as UTC: the server stores UTC but omits the
// marker in some responses.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

// ResolveType derives the normalized category for a document.
// Priority: extension override table, then the remote-provided hint, then
// the generic extension table, then unknown.
func ResolveType(name, remoteHint string) Type {
	ext := extension(name)

	if t, ok := overrideByExt[ext]; ok {
		return t
	}

	if t := typeFromHint(remoteHint); t != TypeUnknown {
		return t
	}

	if t, ok := genericByExt[ext]; ok {
		return t
	}

	return TypeUnknown
}

// extension returns the lowercase extension of name without the dot, or "".
func extension(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// typeFromHint maps the remote file_type hint (a MIME type or a loose
// label) onto the closed category set.
func typeFromHint(hint string) Type {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return TypeUnknown
	}

	switch {
	case strings.Contains(h, "pdf"):
		return TypePDF
	case strings.Contains(h, "spreadsheet"), strings.Contains(h, "excel"), strings.Contains(h, "xls"):
		return TypeExcel
	case strings.Contains(h, "csv"), strings.Contains(h, "ods"):
		return TypeCSV
	case strings.Contains(h, "presentation"), strings.Contains(h, "powerpoint"), strings.Contains(h, "ppt"):
		return TypePowerPoint
	case strings.Contains(h, "msword"), strings.Contains(h, "wordprocessing"), h == "word", h == "doc", h == "docx":
		return TypeWord
	case strings.HasPrefix(h, "image"):
		return TypeImage
	case strings.Contains(h, "zip"), strings.Contains(h, "compressed"), strings.Contains(h, "archive"), strings.Contains(h, "tar"):
		return TypeArchive
	case strings.HasPrefix(h, "text"):
		return TypeText
	}

	return TypeUnknown
}
