package main

import (
	"context"
	"net/http"
	"os"

	"github.com/EmmanuellaOsikoya/melodymatch/auth"
	"github.com/EmmanuellaOsikoya/melodymatch/filestore"
	"github.com/EmmanuellaOsikoya/melodymatch/server"
	"github.com/EmmanuellaOsikoya/melodymatch/server/middlewares"
	"github.com/EmmanuellaOsikoya/melodymatch/spotify"
	. "github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/EmmanuellaOsikoya/melodymatch/utils/dotenv"
	. "github.com/EmmanuellaOsikoya/melodymatch/utils/flag"
	. "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func init() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	// Middlewares
	middlewares.Setup()

	Log.Info("api server initialized")
}

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func newImageStore() filestore.ImageStore {
	if dotenv.IsProdEnv() {
		store, err := filestore.NewS3FileStore(filestore.DefaultS3ImageBucket)
		if err != nil {
			Log.Fatal("failed to initialize s3 file store: ", err)
		}
		return store
	}
	store, err := filestore.NewLocalFileStore("images")
	if err != nil {
		Log.Fatal("failed to initialize local file store: ", err)
	}
	return store
}

func main() {
	defer cleanup()

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("failed to connect to database: ", err)
	}
	DatabaseSetupAndMigration(db)

	catalog, err := spotify.NewFromEnv(context.Background())
	if err != nil {
		Log.Fatal("failed to initialize music catalog: ", err)
	}

	tokens, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		Log.Fatal("failed to initialize token service: ", err)
	}

	var unread *RedisStatusStore
	if os.Getenv("REDIS_HOST") != "" {
		unread, err = GetRedisStatusStore()
		if err != nil {
			Log.Fatal("failed to connect to redis: ", err)
		}
	}

	s := &server.Server{
		DB:        db,
		Bus:       server.NewEventBus(),
		Channels:  server.NewSnapshotChannels(),
		Catalog:   catalog,
		Images:    newImageStore(),
		Tokens:    tokens,
		Passwords: auth.NewPasswordService(),
		Unread:    unread,
	}

	dispatcher := &server.Dispatcher{DB: db, Bus: s.Bus, Channels: s.Channels}
	if err := dispatcher.Run(context.Background()); err != nil {
		Log.Fatal("failed to start snapshot dispatcher: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authed := router.Group("/")
	authed.Use(middlewares.JWT())
	s.RegisterRoutes(router, authed)

	Log.Info("api server starts up")
	router.Run(":8080")
}
