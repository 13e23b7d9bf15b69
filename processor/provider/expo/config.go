package expo

type configSource interface {
	GetExpo() Config
}

type Config struct {
	Url string `yaml:"url"`
}
