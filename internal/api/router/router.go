package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-import-go/internal/api/handler"
	"resume-import-go/internal/constants"
	"resume-import-go/internal/importer"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, importHandler *handler.ImportHandler) {
	api := h.Group("/api/v1")

	api.POST("/import/resume", func(c context.Context, ctx *app.RequestContext) {
		// 获取上传的文件
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "file not found in request"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "failed to open uploaded file"})
			return
		}
		defer file.Close()

		resp, err := importHandler.HandleResumeImport(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			string(ctx.FormValue("kind")), // 可选的类型覆盖
		)
		if err != nil {
			// 管线失败已折叠进resp；到这里的error都是请求本身不合法
			msg := err.Error()
			switch {
			case errors.Is(err, importer.ErrUnsupportedKind):
				msg = "unsupported file type: only PDF and DOCX are accepted"
			case errors.Is(err, importer.ErrFileTooLarge):
				msg = "file exceeds the size limit"
			}
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": msg})
			return
		}

		ctx.Header(constants.ImportUUIDHeader, resp.ImportUUID)
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/import/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		importUUID := ctx.Param("uuid")
		if importUUID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "missing import uuid"})
			return
		}

		record, err := importHandler.GetImportRecord(c, importUUID)
		if err != nil {
			if errors.Is(err, importer.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "import record not found"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, record)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
