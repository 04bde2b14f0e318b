package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"run", "t", "temp", "control", "error", "setpoint"}

// WriteCSV writes one row per sample of every run. Runs without an error
// series leave that column empty.
func WriteCSV(w io.Writer, runs ...Run) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, run := range runs {
		r := run.Result
		for i := 0; i < r.Len(); i++ {
			errCol := ""
			if r.Error != nil {
				errCol = formatFloat(r.Error[i])
			}
			row := []string{
				run.Name,
				formatFloat(r.T[i]),
				formatFloat(r.Temp[i]),
				formatFloat(r.Control[i]),
				errCol,
				formatFloat(r.Setpoint[i]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, runs ...Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, runs...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
