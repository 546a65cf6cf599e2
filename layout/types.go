package layout

// 该文件定义布局结果，供 PDF 渲染、调试 JSON 与测试共用。坐标单位均为 pt，原点在页面左上角。

// Result 保存布局后的页面与元信息。
type Result struct {
	Pages    []Page       `json:"pages"`
	Geometry Geometry     `json:"geometry"`
	Meta     DocumentMeta `json:"meta"`
}

// Geometry 是整份文档共用的页面尺寸与边距。
type Geometry struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
	Margin     float64 `json:"margin"`
}

// LetterGeometry 为 Letter 纸张（612×792）与 50 边距。
func LetterGeometry() Geometry {
	return Geometry{PageWidth: 612, PageHeight: 792, Margin: 50}
}

// ContentWidth 是左右边距之间的可用宽度。
func (g Geometry) ContentWidth() float64 { return g.PageWidth - 2*g.Margin }

// ContentHeight 是上下边距之间的可用高度。
func (g Geometry) ContentHeight() float64 { return g.PageHeight - 2*g.Margin }

// ContentBottom 是内容区域底部的 Y 坐标。
func (g Geometry) ContentBottom() float64 { return g.PageHeight - g.Margin }

// Page 记录一页的绘制指令（按绘制顺序）以及表格结构。
type Page struct {
	Index    int        `json:"index"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Commands []Command  `json:"commands"`
	Tables   []TableBox `json:"tables,omitempty"`
}

// CommandKind 区分绘制指令。
type CommandKind string

const (
	CmdFillRect   CommandKind = "fill"
	CmdStrokeRect CommandKind = "stroke"
	CmdText       CommandKind = "text"
	CmdImage      CommandKind = "image"
)

// Command 是一条绘制指令，按 Kind 只填写对应字段。
type Command struct {
	Kind  CommandKind `json:"kind"`
	Rect  *Rect       `json:"rect,omitempty"`
	Text  *TextBox    `json:"text,omitempty"`
	Image *ImageBox   `json:"image,omitempty"`
}

// Rect 用于填充或描边，Color 为颜色令牌。
type Rect struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// TextBox 表示一个已经排好坐标与折行的文本块。
type TextBox struct {
	Content string     `json:"content"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Font    FontSpec   `json:"font"`
	Color   string     `json:"color"`
	Align   string     `json:"align,omitempty"` // left/center/right（默认 left）
	Lines   []TextLine `json:"lines"`
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ImageBox 描述图片位置与尺寸。
type ImageBox struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableBox 保存一页上表格的结构信息。
type TableBox struct {
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Width        float64    `json:"width"`
	ColumnWidths []float64  `json:"columnWidths"`
	Rows         []TableRow `json:"rows"`
}

// Height 返回表头与所有行的总高度。
func (t TableBox) Height() float64 {
	total := 0.0
	for _, r := range t.Rows {
		total += r.Height
	}
	return total
}

// BodyRows 返回非表头行。
func (t TableBox) BodyRows() []TableRow {
	out := make([]TableRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.IsHeader {
			out = append(out, r)
		}
	}
	return out
}

// TableRow 记录每一行的位置、高度与单元格文本。
type TableRow struct {
	// Source 是该行在完整行列表中的下标，表头为 -1。
	Source   int      `json:"source"`
	Y        float64  `json:"y"`
	Height   float64  `json:"height"`
	IsHeader bool     `json:"isHeader"`
	Shaded   bool     `json:"shaded,omitempty"`
	Cells    []string `json:"cells"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
