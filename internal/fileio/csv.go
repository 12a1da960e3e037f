package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// readCSV reads a roster CSV, auto-detecting the encoding and converting
// to UTF-8. Shift_JIS and EUC-JP are what payroll exports actually use.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "shift_jis", "shift-jis", "sjis", "windows-31j", "cp932":
		dec = transform.NewReader(br, japanese.ShiftJIS.NewDecoder())
	case "euc-jp":
		dec = transform.NewReader(br, japanese.EUCJP.NewDecoder())
	case "iso-2022-jp":
		dec = transform.NewReader(br, japanese.ISO2022JP.NewDecoder())
	default:
		// assume UTF-8
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
