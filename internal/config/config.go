package config

// Config is the root application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources"`
	Reports ReportsConfig `yaml:"reports"`
	Log     LogConfig     `yaml:"log"`

	// Grade is the target school grade for todo and audit reports.
	Grade int `yaml:"grade" env:"KANJIGAP_GRADE" env-default:"6"`
}

// SourcesConfig holds input file locations.
type SourcesConfig struct {
	DictPath       string `yaml:"dict"       env:"KANJIGAP_DICT"       env-default:"kanji.json"`
	DeckPath       string `yaml:"deck"       env:"KANJIGAP_DECK"`
	CurriculumPath string `yaml:"curriculum" env:"KANJIGAP_CURRICULUM"`
	KanjidicPath   string `yaml:"kanjidic"   env:"KANJIGAP_KANJIDIC"   env-default:"kanjidic2.xml"`
}

// ReportsConfig holds output locations and encoding options.
// An empty path disables that report.
type ReportsConfig struct {
	TodoPath       string `yaml:"todo"        env:"KANJIGAP_TODO_OUT"        env-default:"todo.json"`
	DictDumpPath   string `yaml:"dict_dump"   env:"KANJIGAP_DICT_OUT"`
	CurriculumPath string `yaml:"curriculum"  env:"KANJIGAP_CURRICULUM_OUT"  env-default:"curriculum.json"`
	AuditPath      string `yaml:"audit"       env:"KANJIGAP_AUDIT_OUT"       env-default:"audit.json"`
	AuditFormat    string `yaml:"audit_format" env:"KANJIGAP_AUDIT_FORMAT"   env-default:"json"`
	Indent         bool   `yaml:"indent"      env:"KANJIGAP_INDENT"          env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
