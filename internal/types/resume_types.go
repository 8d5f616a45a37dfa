package types

// FileKind 导入文件的声明类型
type FileKind string

const (
	// FileKindPDF PDF文件
	FileKindPDF FileKind = "pdf"
	// FileKindDOCX Word文档
	FileKindDOCX FileKind = "docx"
)

// ResumeFormat 简历版式分类结果
type ResumeFormat string

const (
	// FormatChronological 按时间倒序的经典版式
	FormatChronological ResumeFormat = "chronological"
	// FormatFunctional 技能导向版式（技能区块在工作经历之前）
	FormatFunctional ResumeFormat = "functional"
	// FormatCombination 混合版式（技能优先但经历结构完整）
	FormatCombination ResumeFormat = "combination"
	// FormatAcademic 学术版式（含论文/奖项/研究区块）
	FormatAcademic ResumeFormat = "academic"
	// FormatCreative 自由版式（几乎没有可识别的章节结构）
	FormatCreative ResumeFormat = "creative"
	// FormatUnknown 无法判断
	FormatUnknown ResumeFormat = "unknown"
)

// SectionKind 简历章节类型
type SectionKind string

const (
	SectionSummary      SectionKind = "summary"
	SectionWork         SectionKind = "work"
	SectionEducation    SectionKind = "education"
	SectionSkills       SectionKind = "skills"
	SectionProjects     SectionKind = "projects"
	SectionCertificates SectionKind = "certificates"
	SectionLanguages    SectionKind = "languages"
	SectionInterests    SectionKind = "interests"
	SectionPublications SectionKind = "publications"
	SectionAwards       SectionKind = "awards"
	SectionReferences   SectionKind = "references"
	SectionVolunteer    SectionKind = "volunteer"
	SectionUnknown      SectionKind = "unknown"
)

// FormatTraits 版式分类过程中观测到的结构信号
type FormatTraits struct {
	SectionCount        int  `json:"section_count"`         // 检出的章节数
	DateRangeCount      int  `json:"date_range_count"`      // 日期区间出现次数
	SkillsBeforeWork    bool `json:"skills_before_work"`    // 技能区块是否先于工作经历
	HasAcademicSections bool `json:"has_academic_sections"` // 是否含学术专属章节
	HasContactHeader    bool `json:"has_contact_header"`    // 头部区域是否含联系方式
}

// FormatClassification 版式分类结果，派生一次后只读
type FormatClassification struct {
	Format     ResumeFormat `json:"format"`
	Confidence int          `json:"confidence"` // 0-100
	Traits     FormatTraits `json:"traits"`
}

// DetectedSection 章节探测结果，章节互不重叠且按StartLine有序
type DetectedSection struct {
	Kind      SectionKind `json:"kind"`
	Heading   string      `json:"heading"`    // 命中的标题行原文
	StartLine int         `json:"start_line"` // 内容起始行（标题行之后）
	EndLine   int         `json:"end_line"`   // 内容结束行（不含）
	Content   string      `json:"content"`
}

// Location 城市/国家信息
type Location struct {
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Profile 社交档案（LinkedIn/GitHub等）
type Profile struct {
	Network  string `json:"network"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

// Basics 简历头部的基础信息
type Basics struct {
	Name     string    `json:"name,omitempty"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	URL      string    `json:"url,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// WorkEntry 一段工作经历
type WorkEntry struct {
	Company    string   `json:"company,omitempty"`
	Position   string   `json:"position,omitempty"`
	URL        string   `json:"url,omitempty"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"` // "Present" 表示在职
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// EducationEntry 一段教育经历
type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Area        string `json:"area,omitempty"`      // 专业方向
	StudyType   string `json:"studyType,omitempty"` // 学位
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Score       string `json:"score,omitempty"` // GPA或分数
}

// SkillGroup 一组技能（可带分类名）
type SkillGroup struct {
	Name     string   `json:"name,omitempty"`
	Level    string   `json:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// ProjectEntry 一个项目条目
type ProjectEntry struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Certificate 一个证书条目
type Certificate struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Language 语言能力条目
type Language struct {
	Language string `json:"language,omitempty"`
	Fluency  string `json:"fluency,omitempty"`
}

// Interest 兴趣条目
type Interest struct {
	Name string `json:"name,omitempty"`
}

// Publication 论文/出版物条目
type Publication struct {
	Name      string `json:"name,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Award 奖项条目
type Award struct {
	Title   string `json:"title,omitempty"`
	Date    string `json:"date,omitempty"`
	Awarder string `json:"awarder,omitempty"`
}

// Reference 推荐人条目
type Reference struct {
	Name      string `json:"name,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// ParsedResumeData 启发式解析得到的部分简历数据。
// 只携带能从文本中恢复的字段，缺失字段一律省略，绝不编造。
type ParsedResumeData struct {
	Basics       *Basics          `json:"basics,omitempty"`
	Work         []WorkEntry      `json:"work,omitempty"`
	Education    []EducationEntry `json:"education,omitempty"`
	Skills       []SkillGroup     `json:"skills,omitempty"`
	Projects     []ProjectEntry   `json:"projects,omitempty"`
	Certificates []Certificate    `json:"certificates,omitempty"`
	Languages    []Language       `json:"languages,omitempty"`
	Interests    []Interest       `json:"interests,omitempty"`
	Publications []Publication    `json:"publications,omitempty"`
	Awards       []Award          `json:"awards,omitempty"`
	References   []Reference      `json:"references,omitempty"`
}

// Confidence 导入置信度，仅用于用户提示，从不阻断流程
type Confidence struct {
	Overall  int            `json:"overall"` // 0-100
	Sections map[string]int `json:"sections"`
}

// ImportResult 导入管线的统一输出。
// Success 为 false 当且仅当未能提取出任何可用文本；
// 低置信度只追加警告，绝不翻转 Success。
type ImportResult struct {
	Success        bool                  `json:"success"`
	Data           *ParsedResumeData     `json:"data,omitempty"`
	Classification *FormatClassification `json:"classification,omitempty"`
	Confidence     Confidence            `json:"confidence"`
	Warnings       []string              `json:"warnings"`
	Errors         []string              `json:"errors,omitempty"`
	RawText        string                `json:"raw_text"`
	SourceHTML     string                `json:"source_html,omitempty"` // DOCX来源时的简化HTML视图
}
