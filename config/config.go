package config

import (
	"errors"
	"flag"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DefaultAPIUrl = "http://localhost:8080/"

type Config struct {
	Addr       string
	APIUrl     string
	DBUrl      string
	SessionTTL time.Duration
	DateLayout string
	Debug      bool
}

func ParseFlags() (cfg Config, err error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	fs.UintVar(&port, "port", 3000, "listen port number (default 3000)")
	fs.StringVar(&cfg.APIUrl, "api-url", DefaultAPIUrl, "base URL of the pesquisas backend")
	fs.StringVar(&cfg.DBUrl, "db-url", "sessions.sqlite", "path to SQLite3 session DB file (default sessions.sqlite)")
	var ttl uint
	fs.UintVar(&ttl, "session-ttl", 8*60*60, "session TTL in seconds (default 8h)")
	fs.StringVar(&cfg.DateLayout, "date-layout", "02/01/2006", "layout of created_date (default pt-BR short date)")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SessionTTL = time.Duration(ttl) * time.Second

	if !strings.HasSuffix(cfg.APIUrl, "/") {
		cfg.APIUrl += "/"
	}
	u, perr := url.Parse(cfg.APIUrl)
	switch {
	case perr != nil || u.Scheme == "" || u.Host == "":
		err = errors.New("invalid parameter -api-url")
	case cfg.SessionTTL <= 0:
		err = errors.New("parameter -session-ttl must be positive")
	case cfg.DateLayout == "":
		err = errors.New("missing parameter -date-layout")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
