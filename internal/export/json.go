package export

import (
	"encoding/json"
	"io"
	"os"
)

func WriteJSON(w io.Writer, scenario string, runs ...Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(scenario, runs...))
}

func ExportJSON(path, scenario string, runs ...Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, scenario, runs...)
}
