package rdl

import (
	"fmt"

	"github.com/beevik/etree"
)

// AddField adds a field to the requested data set. The synthesized
// placeholder field is removed when the first real field arrives. An
// empty type defaults to the string type. Without a data set the call is
// a diagnosed no-op.
func (d *Document) AddField(name, typeName string) {
	path := fmt.Sprintf("./DataSets/DataSet[@Name='%s']/Fields", sanitize(d.cfg.dataSet))
	fields := d.anchor("AddField", path)
	if fields == nil {
		return
	}
	if typeName == "" {
		typeName = "System.String"
	}
	newField(fields, sanitize(name), sanitize(typeName))
	if d.placeholder != nil {
		fields.RemoveChild(d.placeholder)
		d.placeholder = nil
	}
}

// AddTextbox appends a text box to the report body. The value is
// typically a generated expression and is sanitized before insertion.
// Boxes stack vertically in insertion order and span the body width.
func (d *Document) AddTextbox(name, value string) {
	items := d.anchor("AddTextbox", "./Body/ReportItems")
	if items == nil {
		return
	}
	top := Inches(len(items.ChildElements())) * In(0, 25)
	box := newTextbox(items, sanitize(name), sanitize(value))
	box.CreateElement("Top").SetText(top.String())
	box.CreateElement("Left").SetText(In(0, 0).String())
	box.CreateElement("Height").SetText(In(0, 25).String())
	box.CreateElement("Width").SetText(d.BodyWidth().String())
}

// SetHeader appends a page header containing the given expression. Each
// call appends a fresh header block; callers wanting a single header call
// this once.
func (d *Document) SetHeader(value string) {
	d.appendPageBand("SetHeader", "PageHeader", value)
}

// SetFooter appends a page footer containing the given expression, with
// the same append semantics as SetHeader.
func (d *Document) SetFooter(value string) {
	d.appendPageBand("SetFooter", "PageFooter", value)
}

func (d *Document) appendPageBand(op, tag, value string) {
	page := d.anchor(op, "./Page")
	if page == nil {
		return
	}
	band := page.CreateElement(tag)
	band.CreateElement("Height").SetText(HeaderHeight.String())
	band.CreateElement("PrintOnFirstPage").SetText("true")
	band.CreateElement("PrintOnLastPage").SetText("true")
	items := band.CreateElement("ReportItems")
	name := fmt.Sprintf("%s%d", tag, len(page.SelectElements(tag)))
	box := newTextbox(items, name, sanitize(value))
	box.CreateElement("Top").SetText(In(0, 0).String())
	box.CreateElement("Left").SetText(In(0, 0).String())
	box.CreateElement("Height").SetText(In(0, 25).String())
	box.CreateElement("Width").SetText(d.BodyWidth().String())
}

// SetBodyHeight updates the body height.
func (d *Document) SetBodyHeight(height Inches) {
	el := d.anchor("SetBodyHeight", "./Body/Height")
	if el == nil {
		return
	}
	d.cfg.bodyHeight = height
	el.SetText(height.String())
}

func newTextbox(parent *etree.Element, name, value string) *etree.Element {
	box := parent.CreateElement("Textbox")
	box.CreateAttr("Name", name)
	box.CreateElement("CanGrow").SetText("true")
	box.CreateElement("KeepTogether").SetText("true")
	paragraphs := box.CreateElement("Paragraphs")
	paragraph := paragraphs.CreateElement("Paragraph")
	runs := paragraph.CreateElement("TextRuns")
	run := runs.CreateElement("TextRun")
	run.CreateElement("Value").SetText(value)
	run.CreateElement("Style")
	paragraph.CreateElement("Style")
	box.CreateElement("rd:DefaultName").SetText(name)
	return box
}
