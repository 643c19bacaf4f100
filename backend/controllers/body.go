package controllers

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// extraFields collects every body field that is not a known column into a
// JSON document, preserving whatever shape the client sent.
func extraFields(body map[string]interface{}, known ...string) (datatypes.JSON, error) {
	extra := make(map[string]interface{})
	for k, v := range body {
		skip := false
		for _, name := range known {
			if k == name {
				skip = true
				break
			}
		}
		if !skip {
			extra[k] = v
		}
	}

	if len(extra) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func stringField(body map[string]interface{}, key string) string {
	v, _ := body[key].(string)
	return v
}
