package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-import-go/internal/api/handler"
	"resume-import-go/internal/api/router"
	"resume-import-go/internal/config"
	"resume-import-go/internal/importer"
	appCoreLogger "resume-import-go/internal/logger"
	"resume-import-go/internal/parser"
	"resume-import-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"            //nolint:gochecknoglobals
	serviceName = "resume-import-go" //nolint:gochecknoglobals
)

// @title Resume Import API
// @version 1.0
// @description This is the API documentation for the resume import service.
// @BasePath /api/v1
func main() {
	initLogger()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Warnf("初始化存储失败，导入结果将不落盘: %v", err)
		storageManager = nil
	} else {
		defer storageManager.Close()
		glog.Info("存储服务初始化成功")
	}

	var pdfOptions []parser.GeometricPDFExtractorOption
	if cfg.Importer.ScannedMinCharsPerPage > 0 {
		pdfOptions = append(pdfOptions, parser.WithScannedMinCharsPerPage(cfg.Importer.ScannedMinCharsPerPage))
	}
	pdfOptions = append(pdfOptions, parser.WithPDFLogger(appCoreLogger.Logger))
	pdfExtractor := parser.NewGeometricPDFExtractor(pdfOptions...)
	glog.Info("PDF提取器初始化成功")

	docxExtractor := parser.NewDOCXExtractor()
	glog.Info("DOCX提取器初始化成功")

	importerComponents := importer.Components{
		PDFExtractor:  pdfExtractor,
		DOCXExtractor: docxExtractor,
	}
	var importerOptions []importer.ImporterOption
	if cfg.Importer.LowConfidenceThreshold > 0 {
		importerOptions = append(importerOptions, importer.WithLowConfidenceThreshold(cfg.Importer.LowConfidenceThreshold))
	}
	importerOptions = append(importerOptions, importer.WithLogger(appCoreLogger.Logger))
	importerModule := importer.NewImporter(importerComponents, importerOptions...)
	glog.Info("导入管线初始化成功")

	importHandler := handler.NewImportHandler(cfg, storageManager, importerModule)
	glog.Info("ImportHandler初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, importHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，服务: %s v%s, 监听地址: %s", serviceName, version, cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger() {
	logFilePath := "logs/app.log"
	if err := os.MkdirAll("logs", 0o755); err != nil {
		log.Fatalf("无法创建日志目录: %v", err)
	}
	fileWriter, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("无法打开日志文件 %s: %v", logFilePath, err)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	multiWriter := zerolog.MultiLevelWriter(consoleWriter, fileWriter)

	level := zerolog.DebugLevel
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = "15:04:05"

	logger := zerolog.New(multiWriter).With().Timestamp().Caller().Logger()

	appCoreLogger.Logger = logger
	zlog.Logger = logger

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)

	glog.SetLogger(hertzCompatibleLogger)
	glog.SetLevel(glog.LevelDebug)

	log.Println("Logger initialized with Zerolog, writing to console and file:", logFilePath)
}
