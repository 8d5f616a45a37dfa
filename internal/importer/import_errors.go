package importer

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractFailed   = errors.New("提取文档内容失败")
	ErrEmptyContent    = errors.New("未能提取到任何文本内容")
	ErrUnsupportedKind = errors.New("不支持的文件类型")
	ErrPersistFailed   = errors.New("持久化导入记录失败")
	ErrFileTooLarge    = errors.New("文件超出大小限制")
	ErrRecordNotFound  = errors.New("导入记录不存在")
)

// ImportError 携带导入上下文的自定义错误
type ImportError struct {
	ImportUUID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *ImportError) Error() string {
	scope := "操作:" + e.Op
	if e.ImportUUID != "" {
		scope += ", UUID:" + e.ImportUUID
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s): %s", e.BaseErr, scope, e.Detail)
	}
	return fmt.Sprintf("%s (%s)", e.BaseErr, scope)
}

func (e *ImportError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ImportError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewExtractError(uuid, detail string) error {
	return &ImportError{
		ImportUUID: uuid,
		Op:         "extract",
		BaseErr:    ErrExtractFailed,
		Detail:     detail,
	}
}

func NewEmptyContentError(uuid string) error {
	return &ImportError{
		ImportUUID: uuid,
		Op:         "extract",
		BaseErr:    ErrEmptyContent,
	}
}

func NewUnsupportedKindError(uuid, detail string) error {
	return &ImportError{
		ImportUUID: uuid,
		Op:         "receive",
		BaseErr:    ErrUnsupportedKind,
		Detail:     detail,
	}
}

func NewFileTooLargeError(uuid, detail string) error {
	return &ImportError{
		ImportUUID: uuid,
		Op:         "receive",
		BaseErr:    ErrFileTooLarge,
		Detail:     detail,
	}
}

func NewPersistError(uuid, detail string) error {
	return &ImportError{
		ImportUUID: uuid,
		Op:         "persist",
		BaseErr:    ErrPersistFailed,
		Detail:     detail,
	}
}
