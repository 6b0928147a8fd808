// Package extract pulls raw guest-list content out of uploaded files and
// feeds it to the records parser.
//
// Supported list formats:
//
//   - .txt  - plain text, passed through as-is
//   - .docx - Word document (archive/zip, word/document.xml paragraph walk)
//   - .pdf  - text extraction via github.com/ledongthuc/pdf
//   - .xlsx - first worksheet as rows via github.com/xuri/excelize/v2
//
// Text formats go through records.Parse; spreadsheets go through
// records.ParseTabular so the two-column shape is preserved. Extraction
// failures are real errors here - the caller decides whether a corrupt
// upload means "no records" or a 4xx response.
package extract
