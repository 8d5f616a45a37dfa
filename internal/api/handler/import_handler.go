package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-import-go/internal/config"
	"resume-import-go/internal/constants"
	"resume-import-go/internal/importer"
	"resume-import-go/internal/logger"
	"resume-import-go/internal/storage"
	"resume-import-go/internal/tracing"
	"resume-import-go/internal/types"
	"resume-import-go/pkg/utils"
)

var handlerTracer = otel.Tracer("resume-import-go/api/handler")

// ImportHandler 简历导入处理器，负责协调上传、解析与持久化
type ImportHandler struct {
	cfg            *config.Config
	storage        *storage.Storage
	importerModule *importer.Importer
}

// NewImportHandler 创建简历导入处理器。
// storage 可以为 nil，此时跳过持久化，导入结果只随响应返回。
func NewImportHandler(
	cfg *config.Config,
	storage *storage.Storage,
	importerModule *importer.Importer,
) *ImportHandler {
	return &ImportHandler{
		cfg:            cfg,
		storage:        storage,
		importerModule: importerModule,
	}
}

// ImportResponse 导入接口响应
type ImportResponse struct {
	ImportUUID string              `json:"import_uuid"`
	Result     *types.ImportResult `json:"result"`
}

// ImportRecord 持久化到Redis的导入记录
type ImportRecord struct {
	ImportUUID        string              `json:"import_uuid"`
	OriginalFilename  string              `json:"original_filename"`
	FileKind          types.FileKind      `json:"file_kind"`
	FileSize          int64               `json:"file_size"`
	FileMD5           string              `json:"file_md5,omitempty"`
	OriginalObjectKey string              `json:"original_object_key,omitempty"`
	RawTextObjectKey  string              `json:"raw_text_object_key,omitempty"`
	Result            *types.ImportResult `json:"result"`
	CreatedAt         time.Time           `json:"created_at"`
}

// HandleResumeImport 处理简历导入请求。
// 提取失败不是HTTP错误：管线的失败折叠在Result里按200返回，
// 只有请求本身不合法（过大、类型不识别）才返回error。
// kindOverride 非空时覆盖按文件名推断的类型。
func (h *ImportHandler) HandleResumeImport(ctx context.Context, reader io.Reader, fileSize int64, filename, kindOverride string) (*ImportResponse, error) {
	ctx, span := handlerTracer.Start(ctx, "ImportHandler.HandleResumeImport",
		trace.WithAttributes(
			attribute.String("import.filename", tracing.SafeAttributeValue("filename", filename, tracing.DefaultMaxLength)),
			attribute.Int64("import.file_size", fileSize),
		))
	defer span.End()

	// UUID在校验之前生成，让请求期的错误也携带导入标识
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	importUUID := uuidV7.String()
	span.SetAttributes(attribute.String("import.uuid", importUUID))

	// 大小上限在读取前校验，声明的fileSize不可信时读取也有限额
	maxBytes := int64(h.cfg.Importer.MaxFileSizeMB) << 20
	if fileSize > maxBytes {
		err := importer.NewFileTooLargeError(importUUID,
			fmt.Sprintf("declared size %d exceeds limit of %d MB", fileSize, h.cfg.Importer.MaxFileSizeMB))
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeValidation,
			attribute.Int64("import.declared_size", fileSize))
		return nil, err
	}

	kind, err := resolveFileKind(importUUID, filename, kindOverride)
	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeValidation,
			attribute.String("import.kind_override", kindOverride))
		return nil, err
	}

	fileBytes, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeHTTP)
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	if int64(len(fileBytes)) > maxBytes {
		err := importer.NewFileTooLargeError(importUUID,
			fmt.Sprintf("payload exceeds limit of %d MB", h.cfg.Importer.MaxFileSizeMB))
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeValidation,
			attribute.Int("import.read_size", len(fileBytes)))
		return nil, err
	}

	// 执行导入管线
	result := h.importerModule.Import(ctx, fileBytes, kind)

	// 持久化尽力而为：失败降级为告警，不影响已产出的结果
	record := &ImportRecord{
		ImportUUID:       importUUID,
		OriginalFilename: filename,
		FileKind:         kind,
		FileSize:         int64(len(fileBytes)),
		Result:           result,
		CreatedAt:        time.Now(),
	}
	h.persistImport(ctx, record, fileBytes, filename, result)

	return &ImportResponse{
		ImportUUID: importUUID,
		Result:     result,
	}, nil
}

// persistImport 原件上传、MD5去重登记与记录落盘
func (h *ImportHandler) persistImport(ctx context.Context, record *ImportRecord, fileBytes []byte, filename string, result *types.ImportResult) {
	if h.storage == nil {
		return
	}

	record.FileMD5 = utils.CalculateMD5(fileBytes)

	// 本次是否新登记了MD5，记录落盘失败时用于回滚
	md5Registered := false
	if h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckAndAddFileMD5(ctx, record.FileMD5)
		if err != nil {
			logger.Warn().Err(err).Str("md5", record.FileMD5).Msg("文件MD5去重检查失败")
		} else if exists {
			logger.Info().Str("md5", record.FileMD5).Str("filename", filename).Msg("检测到重复提交的文件")
			result.Warnings = append(result.Warnings,
				"This file appears to have been imported before.")
		} else {
			md5Registered = true
		}
	}

	if h.storage.MinIO != nil {
		ext := filepath.Ext(filename)
		if ext == "" {
			ext = string("." + record.FileKind)
		}
		objectKey, _, err := h.storage.MinIO.UploadOriginalFile(ctx, record.ImportUUID, ext, fileBytes)
		if err != nil {
			logger.Warn().Err(err).Str("import_uuid", record.ImportUUID).Msg("上传原始文档到MinIO失败")
		} else {
			record.OriginalObjectKey = objectKey
		}

		if result.RawText != "" {
			textKey, err := h.storage.MinIO.UploadRawText(ctx, record.ImportUUID, result.RawText)
			if err != nil {
				logger.Warn().Err(err).Str("import_uuid", record.ImportUUID).Msg("上传提取文本到MinIO失败")
			} else {
				record.RawTextObjectKey = textKey
			}
		}
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.SaveImportRecord(ctx, record.ImportUUID, record); err != nil {
			logger.Warn().Err(err).Str("import_uuid", record.ImportUUID).Msg("保存导入记录失败")
			// 记录没落盘，撤销本次的MD5登记，避免重试被误判为重复提交
			if md5Registered {
				if rerr := h.storage.Redis.RemoveFileMD5(ctx, record.FileMD5); rerr != nil {
					logger.Warn().Err(rerr).Str("md5", record.FileMD5).Msg("回滚MD5登记失败")
				}
			}
		}
	}
}

// GetImportRecord 按UUID查询历史导入记录
func (h *ImportHandler) GetImportRecord(ctx context.Context, importUUID string) (*ImportRecord, error) {
	if h.storage == nil || h.storage.Redis == nil {
		return nil, importer.NewPersistError(importUUID, "record store is not configured")
	}

	data, err := h.storage.Redis.GetImportRecord(ctx, importUUID)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, &importer.ImportError{
				ImportUUID: importUUID,
				Op:         "fetch",
				BaseErr:    importer.ErrRecordNotFound,
			}
		}
		return nil, importer.NewPersistError(importUUID, err.Error())
	}

	var record ImportRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("反序列化导入记录失败: %w", err)
	}
	return &record, nil
}

// resolveFileKind 判定声明的文件类型。
// 显式的kindOverride优先，否则按文件扩展名推断。
func resolveFileKind(importUUID, filename, kindOverride string) (types.FileKind, error) {
	if kindOverride != "" {
		switch strings.ToLower(strings.TrimSpace(kindOverride)) {
		case string(types.FileKindPDF):
			return types.FileKindPDF, nil
		case string(types.FileKindDOCX):
			return types.FileKindDOCX, nil
		default:
			return "", importer.NewUnsupportedKindError(importUUID,
				fmt.Sprintf("kind override %q is not supported, only pdf and docx are accepted", kindOverride))
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case constants.ExtPDF:
		return types.FileKindPDF, nil
	case constants.ExtDOCX:
		return types.FileKindDOCX, nil
	default:
		return "", importer.NewUnsupportedKindError(importUUID,
			fmt.Sprintf("file extension %q is not supported, only PDF and DOCX are accepted", filepath.Ext(filename)))
	}
}
