package report

import "encoding/json"

// FormatJSON returns r as indented JSON.
func FormatJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FormatJSONAll returns the reports of several documents as one indented
// JSON array.
func FormatJSONAll(rs []*Report) ([]byte, error) {
	if rs == nil {
		rs = []*Report{}
	}
	return json.MarshalIndent(rs, "", "  ")
}
