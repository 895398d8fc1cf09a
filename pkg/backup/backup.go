package backup

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/mholzen/wunderlist-backup/pkg/wunderlist"
)

// Backup accumulates collections per kind across repeated calls, one call
// per list, preserving call order.
type Backup struct {
	userID   any
	exported time.Time
	data     map[wunderlist.Kind][]any
}

// New captures the export timestamp; Document reports this time, not the
// time it is called.
func New(userID any) *Backup {
	return NewAt(userID, time.Now())
}

func NewAt(userID any, exported time.Time) *Backup {
	return &Backup{
		userID:   userID,
		exported: exported,
		data:     make(map[wunderlist.Kind][]any),
	}
}

// Normalize turns a response value into zero or more items: nil yields
// none, a slice yields its elements, anything else is a single item.
func Normalize(values any) []any {
	switch v := values.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []map[string]any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return items
	default:
		return []any{v}
	}
}

// Add appends values to the kind's sequence and returns the number added
func (b *Backup) Add(kind wunderlist.Kind, values any) int {
	items := Normalize(values)
	b.data[kind] = append(b.data[kind], items...)
	return len(items)
}

// AddResult adds the data of a successful result. Empty and failed results
// add nothing.
func (b *Backup) AddResult(kind wunderlist.Kind, result wunderlist.Result) int {
	switch result.Outcome {
	case wunderlist.Success:
		return b.Add(kind, result.Data)
	default:
		return 0
	}
}

// Values returns the accumulated sequence, empty if nothing was added
func (b *Backup) Values(kind wunderlist.Kind) []any {
	values, ok := b.data[kind]
	if !ok || values == nil {
		return []any{}
	}
	return values
}

func (b *Backup) UserID() any {
	return b.userID
}

func (b *Backup) Exported() time.Time {
	return b.exported
}

// Document is the exported snapshot
type Document struct {
	User     any    `json:"user"`
	Exported string `json:"exported"`
	Data     Data   `json:"data"`
}

// Data maps each kind to its items and marshals in kind order
type Data map[wunderlist.Kind][]any

func (d Data) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kind := range wunderlist.AllKinds() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kind.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		values := d[kind]
		if values == nil {
			values = []any{}
		}
		value, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document assembles the snapshot with every kind present
func (b *Backup) Document() *Document {
	data := make(Data, len(wunderlist.AllKinds()))
	for _, kind := range wunderlist.AllKinds() {
		data[kind] = b.Values(kind)
	}
	return &Document{
		User:     b.userID,
		Exported: b.exported.Format(time.RFC3339),
		Data:     data,
	}
}
