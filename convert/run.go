package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"mdconv/common"
	"mdconv/config"
	"mdconv/document"
	"mdconv/docx"
	"mdconv/format"
	"mdconv/htmlout"
	"mdconv/markup"
	"mdconv/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to docx", zap.Error(err))
		env.Format = common.OutputFmtDocx
	}
	env.Overwrite = cmd.Bool("overwrite")

	if sel := cmd.String("select"); len(sel) > 0 {
		if _, _, err := config.ParseSelectionRange(sel); err != nil {
			return err
		}
		env.Cfg.Document.Selection.Range = sel
	}

	// text without BOM is UTF-8 unless told otherwise
	cp := cmd.String("input-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Text sources without BOM will be decoded", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process converts selected markup of a single source file and writes result
// to dst directory. When conversion fails midway the partially converted
// document is still written, the same way host keeps blocks applied before
// the failure, and the error is returned.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("input source is not a regular file (%s)", src)
	}

	doc, err := loadSource(src, env, log)
	if err != nil {
		return err
	}
	if err := selectRange(doc, env.Cfg.Document.Selection.Range); err != nil {
		return err
	}

	conv := &Converter{
		Styles: stylesFromConfig(&env.Cfg.Document.Styles),
		Log:    log,
		Status: func(msg string) {
			log.Info("Conversion status", zap.String("message", msg))
		},
		Parsed: func(elements []markup.Element) {
			env.Rpt.StoreData("parsed-elements.txt", []byte(markup.Dump(elements)))
		},
	}
	convErr := conv.Convert(ctx, doc)
	if errors.Is(convErr, ErrEmptySelection) || errors.Is(convErr, context.Canceled) {
		return convErr
	}
	if convErr != nil {
		log.Warn("Conversion was not completed, saving partial result", zap.Error(convErr))
	}
	env.Rpt.StoreData("result-document.txt", []byte(doc.Dump()))

	values := newValues(doc, src, env.Format)
	outputName := buildOutputPath(values, dst, env)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return multierr.Append(convErr, err)
	}

	title := expandTitle(values, env, log)
	switch env.Format {
	case common.OutputFmtHTML:
		err = writeHTML(doc, outputName, title)
	default:
		err = docx.Save(ctx, doc, outputName, docx.Options{Title: title, FixZip: env.Cfg.Document.FixZip}, log)
	}
	if err != nil {
		return multierr.Append(convErr, fmt.Errorf("unable to generate output: %w", err))
	}
	log.Info("Output written", zap.String("to", outputName))

	// Store conversion result for debugging
	env.Rpt.Store("result"+filepath.Ext(outputName), outputName)
	return convErr
}

func loadSource(src string, env *state.LocalEnv, log *zap.Logger) (*document.Document, error) {
	kind, enc, err := detectSource(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check file type: %w", err)
	}
	log.Debug("Source detected", zap.String("file", src), zap.Stringer("kind", kind))
	env.Rpt.Store("source"+filepath.Ext(src), src)

	styles := stylesFromConfig(&env.Cfg.Document.Styles)
	options := []document.Option{document.WithStyles(styles.Headings[:]...)}

	if kind == srcDocx {
		doc, err := docx.Load(src, log, options...)
		if err != nil {
			return nil, fmt.Errorf("unable to load document (%s): %w", src, err)
		}
		return doc, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(textReader(f, enc, env.CodePage))
	if err != nil {
		return nil, fmt.Errorf("unable to read text (%s): %w", src, err)
	}

	doc := document.New(append(options, document.WithLogger(log))...)
	n := doc.AppendLines(string(data))
	log.Debug("Text loaded", zap.String("file", src), zap.Int("lines", n))
	return doc, nil
}

// textReader decodes text source to UTF-8. BOM always wins, code page is only
// used for text without one.
func textReader(r io.Reader, enc srcEncoding, cp encoding.Encoding) io.Reader {
	if enc == encUnknown && cp != nil {
		return cp.NewDecoder().Reader(r)
	}
	return selectReader(r, enc)
}

// selectRange selects paragraphs according to "FROM:TO" range, empty
// one selects everything.
func selectRange(doc *document.Document, rng string) error {
	first, last, err := config.ParseSelectionRange(rng)
	if err != nil {
		return err
	}
	if first == 0 {
		doc.SelectAll()
		return nil
	}
	if last == 0 {
		last = doc.Len()
	}
	return doc.Select(first, last)
}

func stylesFromConfig(cfg *config.StylesConfig) format.Styles {
	return format.Styles{
		Headings:  [3]string{cfg.Heading1, cfg.Heading2, cfg.Heading3},
		ListLevel: cfg.ListLevel,
	}
}

func expandTitle(values Values, env *state.LocalEnv, log *zap.Logger) string {
	if env.Cfg.Document.Title == "" {
		return values.Title
	}
	title, err := expandTemplate(config.TitleFieldName, env.Cfg.Document.Title, values)
	if err != nil {
		log.Warn("Unable to prepare document title", zap.Error(err))
		return values.Title
	}
	return title
}

// prepareOutput makes sure output can be written: existing file is removed
// only when overwriting was requested.
func prepareOutput(outputName string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(outputName); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func writeHTML(doc *document.Document, outputName, title string) (err error) {
	f, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}()
	return htmlout.Render(f, doc, title)
}
