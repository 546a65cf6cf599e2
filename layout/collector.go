package layout

// pageAccumulator 按绘制顺序收集一页的指令。
type pageAccumulator struct {
	commands []Command
	tables   []TableBox
}

func (p *pageAccumulator) fill(x, y, w, h float64, color string) {
	p.commands = append(p.commands, Command{Kind: CmdFillRect, Rect: &Rect{X: x, Y: y, Width: w, Height: h, Color: color}})
}

func (p *pageAccumulator) stroke(x, y, w, h float64, color string, lineWidth float64) {
	p.commands = append(p.commands, Command{Kind: CmdStrokeRect, Rect: &Rect{X: x, Y: y, Width: w, Height: h, Color: color, LineWidth: lineWidth}})
}

func (p *pageAccumulator) appendText(tb TextBox) {
	p.commands = append(p.commands, Command{Kind: CmdText, Text: &tb})
}

func (p *pageAccumulator) appendImage(img ImageBox) {
	p.commands = append(p.commands, Command{Kind: CmdImage, Image: &img})
}

// lastTable 返回当前页最后一张表，没有时返回 nil。
func (p *pageAccumulator) lastTable() *TableBox {
	if len(p.tables) == 0 {
		return nil
	}
	return &p.tables[len(p.tables)-1]
}

type pageCollector struct {
	geometry Geometry
	accs     []*pageAccumulator
	current  int
}

func newPageCollector(g Geometry) *pageCollector {
	return &pageCollector{geometry: g, current: -1}
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if pc.current < 0 {
		return nil
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Index:    i,
			Width:    pc.geometry.PageWidth,
			Height:   pc.geometry.PageHeight,
			Commands: acc.commands,
			Tables:   acc.tables,
		}
	}
	return out
}
