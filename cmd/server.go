package cmd

import (
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/endpoint"
	"github.com/joblyhq/jobly-api/log"
	"github.com/joblyhq/jobly-api/types"
)

const defaultGraphQLPath = "/graphql"
const defaultPort = 3001
const defaultLogLevel = "info"

// Environment variables prefixed with "JOBLY_" can override settings e.g. "JOBLY_DATABASE_URL"
const envVarPrefix = "jobly"

var cfgFile string
var logger log.Logger

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --database-url [URL] --secret-key [KEY] [OPTIONS]",
	Short: "REST and GraphQL API for companies and jobs",
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("database-url") == "" {
			return errors.New("database-url is required")
		}
		if viper.GetString("secret-key") == "" {
			return errors.New("secret-key is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ep := createEndpoint()
		defer ep.Close()

		router := createRouter()
		addRESTRoutes(router, ep)
		if viper.GetBool("graphql") {
			addGraphQLRoutes(router, ep)
		}

		listenAndServe(router, viper.GetInt("port"))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the companies, jobs and users tables",
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("database-url") == "" {
			return errors.New("database-url is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ep := createEndpoint()
		defer ep.Close()

		if err := ep.Migrate(cmd.Context()); err != nil {
			logger.Fatal("unable to create tables", "error", err)
		}
		logger.Info("tables created")
	},
}

// Execute starts the API server
func Execute() {
	zapLogger, err := log.NewProductionLogger(defaultLogLevel)
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = zapLogger

	flags := serverCmd.PersistentFlags()

	// Database and security flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.String("database-url", "", "database connection url e.g. postgres://localhost/jobly")
	flags.String("database-driver", db.DriverPQ, "database driver. options: postgres,pgx")
	flags.Int("database-max-open-conns", db.DefaultOptions().MaxOpenConns, "maximum number of open database connections")
	flags.String("secret-key", "", "key used to sign and verify tokens")
	flags.Duration("token-ttl", 0, "lifetime of issued tokens, 0 means tokens do not expire")
	flags.Int("bcrypt-cost", endpoint.DefaultBcryptCost, "bcrypt work factor for password hashing")

	// HTTP flags
	flags.Int("port", defaultPort, "port to bind the server to")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("log-level", defaultLogLevel, "log level. options: debug,info,warn,error")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")
	flags.Float64("rate-limit", 0, "maximum requests per second, 0 disables rate limiting")
	flags.Int("rate-limit-burst", 20, "maximum burst size when rate limiting")

	// GraphQL specific flags
	flags.Bool("graphql", true, "expose the read-only GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	serverCmd.AddCommand(migrateCmd)

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.JoblyEndpoint {
	options := db.DefaultOptions()
	if maxOpen := viper.GetInt("database-max-open-conns"); maxOpen > 0 {
		options.MaxOpenConns = maxOpen
	}

	cfg := endpoint.NewEndpointConfigWithLogger(logger, viper.GetString("database-url"))
	cfg.
		WithDbDriver(viper.GetString("database-driver")).
		WithDbOptions(options).
		WithSecretKey(viper.GetString("secret-key")).
		WithTokenTTL(viper.GetDuration("token-ttl")).
		WithBcryptCost(viper.GetInt("bcrypt-cost"))

	ep, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return ep
}

func addRESTRoutes(router *httprouter.Router, ep *endpoint.JoblyEndpoint) {
	addRoutes(router, ep.RoutesRest(""))
}

func addGraphQLRoutes(router *httprouter.Router, ep *endpoint.JoblyEndpoint) {
	routes, err := ep.RoutesGraphQL(viper.GetString("graphql-path"))
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}
	addRoutes(router, routes)
}

func addRoutes(router *httprouter.Router, routes []types.Route) {
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func maybeAddRateLimit(handler http.Handler) http.Handler {
	if limit := viper.GetFloat64("rate-limit"); limit > 0 {
		return newRateLimitHandler(handler, limit, viper.GetInt("rate-limit-burst"))
	}
	return handler
}

func initialize() {
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env file")
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
	if level := viper.GetString("log-level"); level != defaultLogLevel {
		leveled, err := log.NewProductionLogger(level)
		if err != nil {
			logger.Fatal("invalid log level", "level", level, "error", err)
		}
		logger = leveled
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondNotFound(w)
	})
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Methods", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int) {
	logger.Info("server listening",
		"port", port)
	handler = maybeAddCORS(maybeAddRequestLogging(maybeAddRateLimit(handler)))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
