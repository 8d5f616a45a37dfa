package constants

import "time"

// Redis Key 前缀和格式常量
// 统一命名规范: resume_import:{tenant}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "resume_import"

	// TenantPlaceholder 键模板中的租户占位符，FormatKey时替换
	TenantPlaceholder = "{tenant}"

	// DefaultTenantID 多租户逻辑落地前的默认租户
	DefaultTenantID = "default_tenant"

	// KeyImportRecordPrefix 导入记录 (STRING, JSON)
	// 格式: resume_import:{tenant}:record:{import_uuid}
	KeyImportRecordPrefix = AppPrefix + ":" + TenantPlaceholder + ":record:"

	// KeyFileMD5Set 上传文件MD5去重集合 (SET)
	// 格式: resume_import:{tenant}:file_md5s
	KeyFileMD5Set = AppPrefix + ":" + TenantPlaceholder + ":file_md5s"
)

const (
	// DefaultMD5ExpireDuration MD5去重记录的兜底过期时间
	DefaultMD5ExpireDuration = 30 * 24 * time.Hour

	// ImportUUIDHeader 响应中携带导入UUID的HTTP头
	ImportUUIDHeader = "X-Import-UUID"
)

// 上传文件的扩展名到声明类型的约定
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
)
