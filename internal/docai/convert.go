package docai

import (
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// fromProto converts the wire document into the neutral model.
func fromProto(doc *documentaipb.Document) *Document {
	if doc == nil {
		return &Document{}
	}

	out := &Document{
		Text:     doc.GetText(),
		Entities: make([]Entity, 0, len(doc.GetEntities())),
		Pages:    make([]Page, 0, len(doc.GetPages())),
	}

	for _, e := range doc.GetEntities() {
		entity := Entity{
			Type:        e.GetType(),
			MentionText: e.GetMentionText(),
		}
		if refs := e.GetPageAnchor().GetPageRefs(); len(refs) > 0 {
			entity.Page = refs[0].GetPage()
		}
		if dv := e.GetNormalizedValue().GetDateValue(); dv != nil {
			entity.NormalizedDate = fmt.Sprintf("%04d-%02d-%02d", dv.GetYear(), dv.GetMonth(), dv.GetDay())
		}
		out.Entities = append(out.Entities, entity)
	}

	for _, p := range doc.GetPages() {
		page := Page{Number: int64(p.GetPageNumber())}
		for _, ff := range p.GetFormFields() {
			page.FormFields = append(page.FormFields, FormField{
				FieldName:  anchorFromProto(ff.GetFieldName().GetTextAnchor()),
				FieldValue: anchorFromProto(ff.GetFieldValue().GetTextAnchor()),
			})
		}
		for _, t := range p.GetTables() {
			table := Table{
				HeaderRows: rowsFromProto(t.GetHeaderRows()),
				BodyRows:   rowsFromProto(t.GetBodyRows()),
			}
			page.Tables = append(page.Tables, table)
		}
		out.Pages = append(out.Pages, page)
	}

	return out
}

func anchorFromProto(a *documentaipb.Document_TextAnchor) TextAnchor {
	segments := a.GetTextSegments()
	anchor := TextAnchor{Segments: make([]TextSegment, 0, len(segments))}
	for _, s := range segments {
		anchor.Segments = append(anchor.Segments, TextSegment{
			Start: int64(s.GetStartIndex()),
			End:   int64(s.GetEndIndex()),
		})
	}
	return anchor
}

func rowsFromProto(rows []*documentaipb.Document_Page_Table_TableRow) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		row := TableRow{Cells: make([]TextAnchor, 0, len(r.GetCells()))}
		for _, c := range r.GetCells() {
			row.Cells = append(row.Cells, anchorFromProto(c.GetLayout().GetTextAnchor()))
		}
		out = append(out, row)
	}
	return out
}
