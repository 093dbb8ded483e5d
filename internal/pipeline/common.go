package pipeline

import (
	"rspipe/internal"
	"rspipe/internal/rsformat"
)

// commonFields reads the shared leading fields of one row. The ministry name
// is canonicalized against the ministry master so the 建制順 ordering and the
// policy-owner column stay consistent across name variants.
func commonFields(ix *ColumnIndex, row internal.Row, bc *BatchContext, id int) rsformat.Common {
	get := func(kind FieldKind) string {
		h, ok := ix.Singleton(kind)
		if !ok {
			return ""
		}
		return row.Get(h)
	}

	ministry := rsformat.CanonicalMinistry(get(FieldMinistry))
	return rsformat.Common{
		SheetKind:      rsformat.SheetKindReview,
		FiscalYear:     bc.Year(),
		BusinessID:     id,
		ProjectName:    get(FieldProjectName),
		MinistryOrder:  rsformat.MinistryOrder(ministry),
		PolicyMinistry: ministry,
		Ministry:       ministry,
		Bureau:         get(FieldBureau),
		Department:     get(FieldDepartment),
		Division:       get(FieldDivision),
		Office:         get(FieldOffice),
		Unit:           get(FieldUnit),
		Section:        get(FieldSection),
	}
}
