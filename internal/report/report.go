package report

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Report is the input to a report writer: the scan result plus the root it
// was produced from. Files are absolute paths in their scan order.
type Report struct {
	Root        string
	Files       []string
	GeneratedAt time.Time
}

// Writer renders a report in a specific layout.
type Writer interface {
	Write(w io.Writer, rep *Report) error
}

// FormatStandard and FormatCustom name the two built-in layouts.
const (
	FormatStandard = "standard"
	FormatCustom   = "custom"
)

// GetWriter returns a writer for the named layout.
func GetWriter(format string) (Writer, error) {
	switch format {
	case FormatStandard, "":
		return &StandardWriter{}, nil
	case FormatCustom:
		return &CustomWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders the report to outPath. Failure to create or write the
// output is a hard error: it means the requested artifact cannot exist.
func WriteFile(rep *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := writer.Write(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

// errWriter folds write errors so layout code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
