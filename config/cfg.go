package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// StylesConfig names host paragraph styles used for converted blocks.
	StylesConfig struct {
		Heading1  string `yaml:"heading1" validate:"required"`
		Heading2  string `yaml:"heading2" validate:"required"`
		Heading3  string `yaml:"heading3" validate:"required"`
		ListLevel int    `yaml:"list_level" validate:"min=0,max=8"`
	}

	SelectionConfig struct {
		// Paragraphs of docx source to convert, "FROM:TO" (1-based,
		// inclusive), empty means whole document.
		Range string `yaml:"range"`
	}

	DocumentConfig struct {
		FixZip                bool            `yaml:"fix_zip"`
		Title                 string          `yaml:"title"`
		OutputNameTemplate    string          `yaml:"output_name_template"`
		FileNameTransliterate bool            `yaml:"file_name_transliterate"`
		Styles                StylesConfig    `yaml:"styles"`
		Selection             SelectionConfig `yaml:"selection"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	TitleFieldName              TemplateFieldName = "title"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(TitleFieldName)),
)

var validatorOptions = append([]func(*gencfg.ValidatorOptions){},
	gencfg.WithAdditionalChecks(func(sl validator.StructLevel) {
		cfg, ok := sl.Current().Interface().(Config)
		if !ok {
			return
		}
		if _, _, err := ParseSelectionRange(cfg.Document.Selection.Range); err != nil {
			sl.ReportError(cfg.Document.Selection.Range, "Range", "range", "selection_range", "")
		}
	}),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, validatorOptions...); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
