package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nconklindev/sheetjson/internal/discover"
	"github.com/nconklindev/sheetjson/internal/rowrange"
	"github.com/nconklindev/sheetjson/internal/types"
)

// Options configures a conversion run.
type Options struct {
	// Root is the directory names are resolved against and scans start from.
	Root string
	// Range selects the header row and the data rows of every sheet.
	Range types.RowRange
	// SheetSuffix writes one <base>.<sheet>.json per sheet instead of a
	// single <base>.json shared by all sheets.
	SheetSuffix bool
}

// Pipeline converts spreadsheet files to JSON.
type Pipeline struct {
	Options
	Decode     Decoder
	Classifier discover.Classifier
	Logger     *log.Logger
	// Progress, when set, receives the fraction of files done. Sends never block.
	Progress chan<- float64
}

// New returns a Pipeline using the default decoders and classifier. A nil
// logger discards output.
func New(opts Options, logger *log.Logger) *Pipeline {
	opts.Root = AbsRoot(opts.Root)
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		Options:    opts,
		Decode:     Decode,
		Classifier: discover.NewClassifier(),
		Logger:     logger,
	}
}

// AbsRoot makes root absolute, defaulting to the working directory.
func AbsRoot(root string) string {
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// ResolveNamed finds name.xlsx, then name.xls, relative to root unless name
// is absolute.
func ResolveNamed(root, name string) (string, error) {
	base := name
	if !filepath.IsAbs(base) {
		base = filepath.Join(root, name)
	}
	for _, ext := range discover.Extensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: neither %s.xlsx nor %s.xls exists", ErrFileNotFound, name, name)
}

// Discover lists every eligible spreadsheet under Root.
func (p *Pipeline) Discover() ([]string, error) {
	files, err := p.Classifier.Scan(p.Root, p.Logger)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Root, err)
	}
	p.Logger.Info("found spreadsheets", "root", p.Root, "count", len(files))
	return files, nil
}

// Run converts every file in order. A failing file never stops the others.
func (p *Pipeline) Run(files []string) []types.ConversionResult {
	p.Logger.Info("converting", "files", len(files), "rows", rowrange.String(p.Range))

	var results []types.ConversionResult
	for i, file := range files {
		results = append(results, p.ConvertFile(file)...)
		p.report(float64(i+1) / float64(len(files)))
	}
	return results
}

// ConvertFile decodes one workbook and writes JSON for each of its sheets.
func (p *Pipeline) ConvertFile(path string) (results []types.ConversionResult) {
	defer func() {
		if r := recover(); r != nil {
			err := &FileError{Path: path, Op: "panic", Err: fmt.Errorf("%v", r)}
			p.Logger.Error("unexpected failure", "file", p.rel(path), "err", err)
			results = append(results, types.ConversionResult{
				InputFile: path,
				Status:    types.StatusFailed,
				Err:       err,
			})
		}
	}()

	doc, err := p.Decode(path)
	if err != nil {
		err = &FileError{Path: path, Op: "decode", Err: err}
		p.Logger.Error("could not read workbook", "file", p.rel(path), "err", err)
		return []types.ConversionResult{{
			InputFile: path,
			Status:    types.StatusFailed,
			Err:       err,
		}}
	}

	if len(doc.Sheets) == 0 {
		p.Logger.Warn("workbook has no sheets", "file", p.rel(path))
	}
	for _, sheet := range doc.Sheets {
		results = append(results, p.convertSheet(path, sheet))
	}
	return results
}

func (p *Pipeline) convertSheet(path string, sheet types.Sheet) types.ConversionResult {
	res := types.ConversionResult{InputFile: path, Sheet: sheet.Name}

	records, err := Slice(sheet.Rows, p.Range)
	if err != nil {
		res.Status = types.StatusSkipped
		res.Err = fmt.Errorf("%w: %s has %d rows, wanted %s", err, sheet.Name, len(sheet.Rows), rowrange.String(p.Range))
		p.Logger.Warn("not enough rows to slice", "file", p.rel(path), "sheet", sheet.Name, "rows", rowrange.String(p.Range))
		return res
	}
	if len(records) == 0 {
		res.Status = types.StatusSkipped
		res.Err = ErrNoRecords
		p.Logger.Warn("no records", "file", p.rel(path), "sheet", sheet.Name)
		return res
	}

	out := OutputPath(path, sheet.Name, p.SheetSuffix)
	n, err := WriteRecords(out, records)
	if err != nil {
		res.Status = types.StatusFailed
		res.Err = &FileError{Path: out, Op: "write", Err: err}
		p.Logger.Error("could not write output", "file", p.rel(path), "sheet", sheet.Name, "err", err)
		return res
	}

	res.Status = types.StatusWritten
	res.OutputFile = p.rel(out)
	res.Records = len(records)
	res.Bytes = n
	p.Logger.Info("converted", "file", p.rel(path), "sheet", sheet.Name, "output", res.OutputFile, "records", res.Records)
	return res
}

func (p *Pipeline) rel(path string) string {
	if r, err := filepath.Rel(p.Root, path); err == nil {
		return r
	}
	return path
}

func (p *Pipeline) report(done float64) {
	if p.Progress == nil {
		return
	}
	select {
	case p.Progress <- done:
	default:
	}
}

// Convert runs a whole conversion: the resolved input file when one is given,
// otherwise every eligible file under Root. Panics escaping the pipeline are
// returned as errors.
func (p *Pipeline) Convert(input string) (results []types.ConversionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	files := []string{input}
	if input == "" {
		files, err = p.Discover()
		if err != nil {
			return nil, err
		}
	}
	return p.Run(files), nil
}
