package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/ledgerpdf/fonts"
	"github.com/ByLCY/ledgerpdf/layout"
	"github.com/ByLCY/ledgerpdf/renderer"
)

const defaultStrokeWidth = 1.0

// Renderer draws layout results via github.com/tdewolff/canvas.
// It also measures text, so the same instance serves as the layout Typesetter.
type Renderer struct {
	baseDir string
	palette Palette

	// injected resources
	fontBlobs  map[string][]byte // by face name
	imageBlobs map[string][]byte // by unique name

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Palette Palette
	Fonts   map[string]Resource // face name (regular/bold) → font data
	Images  map[string]Resource // built-in images accessible via built-in:<name>
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		palette:      DefaultPalette().Merge(opts.Palette),
		fontBlobs:    map[string][]byte{},
		imageBlobs:   map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if data := res.load(); len(data) > 0 && name != "" {
			r.fontBlobs[strings.ToLower(name)] = data
		}
	}
	for name, res := range opts.Images {
		if data := res.load(); len(data) > 0 && name != "" {
			r.imageBlobs[name] = data
		}
	}
	return r
}

// load 读取失败时返回 nil，真正使用时再报错。
func (res Resource) load() []byte {
	if len(res.Bytes) > 0 {
		return res.Bytes
	}
	if res.Path != "" {
		data, _ := os.ReadFile(res.Path)
		return data
	}
	return nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：入参宽度与返回的行宽、行高均为 pt；canvas 内部使用 mm，在边界做换算。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontSpec) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, canvas.Black)
	if err != nil {
		return nil, err
	}
	limit := math.MaxFloat64
	if width > 0 {
		limit = toMm(width)
	}
	lines := greedyWrapTokens(content, limit, face)
	lineHeight := toPt(face.Metrics().LineHeight)
	if lineHeight <= 0 {
		lineHeight = font.Size * 1.2
	}
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	for i := range lines {
		lines[i].Width = toPt(lines[i].Width)
		lines[i].Height = lineHeight
	}
	return lines, nil
}

// drawPage 按布局给出的顺序执行绘制指令，保证底色在文本之下、边框在最上。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	for _, cmd := range page.Commands {
		switch cmd.Kind {
		case layout.CmdFillRect:
			if cmd.Rect != nil {
				r.fillRect(ctx, *cmd.Rect)
			}
		case layout.CmdStrokeRect:
			if cmd.Rect != nil {
				r.strokeRect(ctx, *cmd.Rect)
			}
		case layout.CmdText:
			if cmd.Text != nil {
				if err := r.drawTextBox(ctx, *cmd.Text); err != nil {
					return err
				}
			}
		case layout.CmdImage:
			if cmd.Image != nil {
				if err := r.drawImage(ctx, *cmd.Image); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("未知的绘制指令：%s", cmd.Kind)
		}
	}
	return nil
}

func (r *Renderer) fillRect(ctx *canvas.Context, rc layout.Rect) {
	ctx.SetFillColor(r.palette.Resolve(rc.Color))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
}

func (r *Renderer) strokeRect(ctx *canvas.Context, rc layout.Rect) {
	w := rc.LineWidth
	if w <= 0 {
		w = defaultStrokeWidth
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(r.palette.Resolve(rc.Color))
	ctx.SetStrokeWidth(toMm(w))
	ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font, r.palette.Resolve(tb.Color))
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: tb.Width, Height: tb.Height}}
	}

	// 处理水平对齐：left（默认）/center/right。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	ascent := face.Metrics().Ascent
	cursorY := tb.Y
	for _, line := range lines {
		if line.Content != "" {
			textLine := canvas.NewTextLine(face, line.Content, textAlign)
			// 基线位置：行顶部加上字体上升部（mm）
			ctx.DrawText(toMm(anchorX), toMm(cursorY)+ascent, textLine)
		}
		lh := line.Height
		if lh <= 0 {
			lh = tb.Font.Size * 1.2
		}
		cursorY += lh
	}
	return nil
}

// drawImage 将图片等比缩放到 ImageBox 之内。
func (r *Renderer) drawImage(ctx *canvas.Context, img layout.ImageBox) error {
	if img.Path == "" {
		return nil
	}
	data, err := r.imageBytes(img.Path)
	if err != nil {
		return err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("解码图片 %s 失败: %w", img.Path, err)
	}
	px := float64(decoded.Bounds().Dx())
	py := float64(decoded.Bounds().Dy())
	if px <= 0 || py <= 0 {
		return nil
	}
	dpmm := 1.0
	if img.Width > 0 && img.Height > 0 {
		dpmm = math.Max(px/toMm(img.Width), py/toMm(img.Height))
	}
	ctx.DrawImage(toMm(img.X), toMm(img.Y), decoded, canvas.DPMM(dpmm))
	return nil
}

func (r *Renderer) imageBytes(orig string) ([]byte, error) {
	// built-in resources take precedence
	if strings.HasPrefix(orig, "built-in:") || strings.HasPrefix(orig, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(orig, "built-in:"), "builtin:")
		blob, ok := r.imageBlobs[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置图片资源 built-in:%s", name)
		}
		return blob, nil
	}
	path := orig
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许直接使用路径：%s（请改用 built-in: 或绝对路径）", orig)
		}
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", orig, err)
	}
	return data, nil
}

func (r *Renderer) fontFace(font layout.FontSpec, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font.Face)
	if err != nil {
		return nil, err
	}
	size := font.Size
	if size <= 0 {
		size = 10
	}
	return family.Face(size, col, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(face string) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := strings.ToLower(face)
	if key == "" {
		key = layout.FaceRegular
	}
	style := canvas.FontRegular
	if key == layout.FaceBold {
		style = canvas.FontBold
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.fontFamilies[key]; ok {
		return family, style, nil
	}

	data, ok := r.fontBlobs[key]
	if !ok {
		var err error
		if data, err = fonts.Load(key); err != nil {
			return nil, style, err
		}
	}
	family := canvas.NewFontFamily("ledgerpdf-" + key)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, style, fmt.Errorf("加载字体 %s 失败: %w", key, err)
	}
	r.fontFamilies[key] = family
	return family, style, nil
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }

// greedyWrapTokens 优先在空白处分割，超过限制时在词内拆分；宽度单位为 mm。
func greedyWrapTokens(content string, limit float64, face *canvas.FontFace) []layout.TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	tokens := tokenizeContent(content)
	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{Content: "", Width: 0})
			}
			return
		}
		// 行尾空白不参与居中
		lineStr := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		lines = append(lines, layout.TextLine{
			Content: lineStr,
			Width:   face.TextWidth(lineStr),
		})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += face.TextWidth(token)
	}

	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace && currentWidth == 0 {
			// 行首空白丢弃
			continue
		}

		tokenWidth := face.TextWidth(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			if isSpace {
				// 空白本身导致溢出时直接换行，不带入下一行
				emit(false)
				continue
			}
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, face) {
			chunkWidth := face.TextWidth(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
