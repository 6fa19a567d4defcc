package measures

import (
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/fieldpaths"
)

// Collect builds the record stored for doc according to collects. Listed
// paths are copied at the same nesting; missing paths are skipped. The
// document id, when there is one, is attached under "_id". Collecting
// nothing yields nil.
func Collect(collects models.Collects, doc models.Document) map[string]any {
	var record map[string]any
	switch collects.Mode {
	case models.CollectAll:
		record = fieldpaths.CopyObject(doc.Body)
		if record == nil {
			record = make(map[string]any, 1)
		}
	case models.CollectFields:
		record = make(map[string]any, len(collects.Fields)+1)
		for _, path := range collects.Fields {
			if value, found := fieldpaths.Get(doc.Body, path); found {
				fieldpaths.Set(record, path, fieldpaths.DeepCopy(value))
			}
		}
	default:
		return nil
	}

	if doc.ID != "" {
		record[models.FieldID] = doc.ID
	}
	return record
}
