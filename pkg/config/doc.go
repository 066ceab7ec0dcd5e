// Package config loads authclient configuration from the process environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the environment (the default
//     .env in the working directory when no path is given).
//   - Load parses the environment into any struct annotated with env tags and
//     caches the result per type, so each component config is parsed once.
//   - ForceReload bypasses the cache, ResetCache clears it (handy in tests).
//   - MustLoad and MustLoadEnv panic on failure for startup code.
//
// Component packages expose their own Config structs (transport.Config,
// refresh.Config, guard.Config, session.HintConfig, redis.Config); the CLI
// composes them:
//
//	var cfg struct {
//	    Transport transport.Config
//	    Refresh   refresh.Config
//	}
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Errors are sentinels comparable with errors.Is: ErrParsingConfig,
// ErrConfigNotLoaded, ErrNilPointer, ErrLoadingEnvFile.
package config
