package stage

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"quarteto/db"
	"quarteto/engine"
	"quarteto/lib/clock"
	"quarteto/pcache"
	"quarteto/resource"

	"github.com/samber/mo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type StageArgs struct {
	SQLitePath string `arg:"--sqlite-path,env:SQLITE_PATH" default:"quarteto.db" json:"sqlite_path,omitempty"`

	MysqlHost     string `arg:"--mysql-host,env:MYSQL_SERVER_ADDRESS" json:"mysql_host,omitempty"`
	MysqlDB       string `arg:"--mysql-db,env:MYSQL_DATABASE_NAME" json:"mysql_db,omitempty"`
	MysqlUsername string `arg:"--mysql-user,env:MYSQL_USERNAME" json:"mysql_username,omitempty"`
	MysqlPassword string `arg:"--mysql-password,env:MYSQL_PASSWORD" json:"mysql_password,omitempty"`

	// Parsed programs are cached in process; 0 disables the cache.
	ProgramCacheBytes int64 `arg:"--program-cache-bytes,env:PROGRAM_CACHE_BYTES" default:"67108864" json:"program_cache_bytes,omitempty"`
	Dev               bool  `arg:"--dev,env:DEV" default:"false" json:"dev,omitempty"`
}

func (args StageArgs) Valid() error {
	missingFields := make([]string, 0)
	if args.MysqlHost != "" {
		if args.MysqlDB == "" {
			missingFields = append(missingFields, "MYSQL_DATABASE_NAME")
		}
		if args.MysqlUsername == "" {
			missingFields = append(missingFields, "MYSQL_USERNAME")
		}
		if args.MysqlPassword == "" {
			missingFields = append(missingFields, "MYSQL_PASSWORD")
		}
	} else if args.SQLitePath == "" {
		missingFields = append(missingFields, "SQLITE_PATH")
	}
	if args.ProgramCacheBytes < 0 {
		return fmt.Errorf("program cache size can not be negative: %d", args.ProgramCacheBytes)
	}
	if len(missingFields) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missingFields, ", "))
	}
	return nil
}

// Stage holds everything a process needs to store and run programs.
type Stage struct {
	DB       db.Connection
	Cache    mo.Option[pcache.PCache]
	Executor engine.ProgramExecutor
	Clock    clock.Clock
	Logger   *zap.Logger
	Args     StageArgs
	stop     chan struct{}
	// shared by copies of the stage so that only the first Close acts
	closed *sync.Once
}

// Close stops background reporters and releases the stage's resources.
// Calls after the first one do nothing and return nil.
func (s Stage) Close() error {
	if s.closed == nil {
		return s.release()
	}
	var err error
	s.closed.Do(func() {
		err = s.release()
	})
	return err
}

func (s Stage) release() error {
	if s.stop != nil {
		close(s.stop)
	}
	if c, ok := s.Cache.Get(); ok {
		_ = c.Close()
	}
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
	return s.DB.Close()
}

func NewLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func CreateFromArgs(args *StageArgs) (stage Stage, err error) {
	if err = args.Valid(); err != nil {
		return stage, err
	}

	// First, create a structured logger that we can then use in other places.
	log.Print("Creating logger")
	logger, err := NewLogger(args.Dev)
	if err != nil {
		return stage, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)

	var conn db.Connection
	if args.MysqlHost != "" {
		logger.Info("Connecting to mysql", zap.String("host", args.MysqlHost))
		conn, err = materialize[db.Connection](db.MySQLConfig{
			Host:     args.MysqlHost,
			DBname:   args.MysqlDB,
			Username: args.MysqlUsername,
			Password: args.MysqlPassword,
		})
	} else {
		logger.Info("Opening sqlite", zap.String("path", args.SQLitePath))
		conn, err = materialize[db.Connection](db.SQLiteConfig{Path: args.SQLitePath})
	}
	if err != nil {
		return stage, fmt.Errorf("failed to create db connection: %v", err)
	}

	stop := make(chan struct{})
	cache := mo.None[pcache.PCache]()
	if args.ProgramCacheBytes > 0 {
		logger.Info("Creating program cache", zap.Int64("max_bytes", args.ProgramCacheBytes))
		c, err := materialize[pcache.PCache](pcache.Config{MaxCost: args.ProgramCacheBytes, AverageItemCost: 1 << 10})
		if err != nil {
			_ = conn.Close()
			return stage, fmt.Errorf("failed to create program cache: %v", err)
		}
		pcache.ReportPeriodically("programs", c, time.Minute, stop)
		cache = mo.Some(c)
	}
	db.ReportPeriodically(conn.DB, time.Minute, stop)

	return Stage{
		DB:       conn,
		Cache:    cache,
		Executor: engine.NewProgramExecutor(cache, logger),
		Clock:    clock.Unix{},
		Logger:   logger,
		Args:     *args,
		stop:     stop,
		closed:   &sync.Once{},
	}, nil
}

func materialize[R resource.Resource](config resource.Config) (R, error) {
	var ret R
	r, err := config.Materialize()
	if err != nil {
		return ret, err
	}
	ret, ok := r.(R)
	if !ok {
		_ = r.Close()
		return ret, fmt.Errorf("unexpected resource of type: %d", r.Type())
	}
	return ret, nil
}
