package persist

// SlotName is the fixed key the application snapshot is stored under.
const SlotName = "daydesk-storage"

// SchemaVersion is the current shape of the serialized snapshot payload.
// Load migrates older payloads forward; a payload from a newer version is
// treated as unreadable and falls back to defaults.
const SchemaVersion = 1

// SlotRecord is one named key-value slot holding a serialized snapshot.
type SlotRecord struct {
	Name           string `gorm:"column:name;primaryKey;size:190;not null"`
	PayloadJSON    string `gorm:"column:payload_json;type:text;not null"`
	SchemaVersion  int    `gorm:"column:schema_version;not null;default:1"`
	SavedAtSeconds int64  `gorm:"column:saved_at_s;not null"`
}

// TableName provides the explicit table binding for GORM.
func (SlotRecord) TableName() string {
	return "storage_slots"
}
