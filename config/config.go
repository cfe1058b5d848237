package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig contains all of the server settings defined in the TOML file
type ServerConfig struct {
	ListenAddrIP   string
	ListenAddrPort string
	WebDir         string // holds app.wasm, served under /web
	StylesDir      string // holds webapp.css, served under /webapp
	LogLevel       string
	LogOutput      string
	LogFile        string
	FrontEndConfig
}

// FrontEndConfig stores all of the frontend settings
type FrontEndConfig struct {
	AppName     string
	Title       string
	Description string
	Shell       bool // wrap every page in the root shell component
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serverConfig.ServerAddr", "")
	v.SetDefault("serverConfig.ServerPort", "8000")
	v.SetDefault("serverConfig.WebDir", "web")
	v.SetDefault("serverConfig.StylesDir", "webapp")
	v.SetDefault("frontend.AppName", "printdesk")
	v.SetDefault("frontend.Title", "printdesk")
	v.SetDefault("frontend.Description", "Edit and print")
	v.SetDefault("frontend.Shell", false)
	v.SetDefault("logging.Level", "Info")
	v.SetDefault("logging.OutputPath", "stdout")
	v.SetDefault("logging.LogFileLocation", "printdesk.log")
}

// Load reads serverConfig.toml from config/ or the working directory, or
// from configFile when it is set. A missing default file is not an error
func Load(configFile string) (ServerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PRINTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("config/")
		v.AddConfigPath(".")
		v.SetConfigName("serverConfig")
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return ServerConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var serverConfigLive ServerConfig
	serverConfigLive.ListenAddrIP = v.GetString("serverConfig.ServerAddr")
	serverConfigLive.ListenAddrPort = v.GetString("serverConfig.ServerPort")
	serverConfigLive.WebDir = filepath.ToSlash(v.GetString("serverConfig.WebDir"))
	serverConfigLive.StylesDir = filepath.ToSlash(v.GetString("serverConfig.StylesDir"))
	serverConfigLive.LogLevel = v.GetString("logging.Level")
	serverConfigLive.LogOutput = v.GetString("logging.OutputPath")
	serverConfigLive.LogFile = v.GetString("logging.LogFileLocation")
	serverConfigLive.AppName = v.GetString("frontend.AppName")
	serverConfigLive.Title = v.GetString("frontend.Title")
	serverConfigLive.Description = v.GetString("frontend.Description")
	serverConfigLive.Shell = v.GetBool("frontend.Shell")
	return serverConfigLive, nil
}

// SetupServer does the initial configuration
func SetupServer(configFile string) (ServerConfig, *slog.Logger, error) {
	serverConfigLive, err := Load(configFile)
	if err != nil {
		return ServerConfig{}, nil, err
	}
	logger := setupLogging(serverConfigLive)
	logger.Info("Base Logger is setup!")
	return serverConfigLive, logger, nil
}

func parseLevel(logLevelString string) slog.Level {
	switch logLevelString {
	case "Debug", "debug":
		return slog.LevelDebug
	case "Info", "info":
		return slog.LevelInfo
	case "Warn", "warn":
		return slog.LevelWarn
	case "Error", "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func setupLogging(serverConfig ServerConfig) *slog.Logger {
	var logWriter io.Writer
	if serverConfig.LogOutput == "file" {
		logPath, err := filepath.Abs(filepath.ToSlash(serverConfig.LogFile))
		if err != nil {
			fmt.Println("Unable to create log file path: ", err)
			logPath = "output.log"
		}
		logFile, err := os.Create(logPath)
		if err != nil {
			fmt.Println("Unable to create log file: ", err)
			logWriter = os.Stdout
		} else {
			logWriter = logFile
			fmt.Println("Logging to file: ", logPath)
		}
	} else {
		logWriter = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(serverConfig.LogLevel),
	}
	return slog.New(slog.NewTextHandler(logWriter, opts))
}
