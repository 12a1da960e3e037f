package ocr

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfConf = pdfmodel.NewDefaultConfiguration()

// PagesFromUpload turns one uploaded file into OCR units. Images pass
// through whole; PDFs are cut into single-page documents with pdfcpu so
// each OCR call sees exactly one page (rasterization stays upstream, the
// collaborator accepts PDF parts directly).
func PagesFromUpload(name, mime string, data []byte, maxPDFPages int) ([]Page, error) {
	if !isPDF(name, mime) {
		return []Page{{Name: name, MIME: mime, Data: data}}, nil
	}

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), pdfConf)
	if err != nil {
		return nil, fmt.Errorf("pdf %s: %w", name, err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("pdf %s: %w", name, err)
	}
	count := pdfCtx.PageCount
	if maxPDFPages > 0 && count > maxPDFPages {
		count = maxPDFPages
	}

	pages := make([]Page, 0, count)
	for i := 1; i <= count; i++ {
		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(data), &buf, []string{strconv.Itoa(i)}, pdfConf); err != nil {
			return nil, fmt.Errorf("pdf %s page %d: %w", name, i, err)
		}
		pages = append(pages, Page{
			Name: fmt.Sprintf("%s#p%d", name, i),
			MIME: "application/pdf",
			Data: buf.Bytes(),
		})
	}
	return pages, nil
}

func isPDF(name, mime string) bool {
	return mime == "application/pdf" ||
		strings.EqualFold(filepath.Ext(name), ".pdf")
}
