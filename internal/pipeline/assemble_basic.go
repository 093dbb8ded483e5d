package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"rspipe/internal"
	"rspipe/internal/rsformat"
	"rspipe/internal/util"
)

func assembleOrganization(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	for i, row := range rows {
		rec := rsformat.Organization{
			Common:        commonFields(ix, row, bc, ids[i]),
			CreatorNo:     1,
			OtherBureau:   clean(cell(ix, row, FieldDeptBureau)),
			OtherDivision: clean(cell(ix, row, FieldDeptSection)),
			Creator:       clean(cell(ix, row, FieldCreator)),
		}
		out.Append(rec)
	}
}

func assembleProjectOverview(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	for i, row := range rows {
		rec := rsformat.ProjectOverview{
			Common:        commonFields(ix, row, bc, ids[i]),
			Purpose:       cell(ix, row, FieldPurpose),
			CurrentIssues: cell(ix, row, FieldCurrentIssues),
			Summary:       cell(ix, row, FieldSummary),
			SummaryURL:    cell(ix, row, FieldSummaryURL),
			Category:      cell(ix, row, FieldCategory),
			MajorExpense:  cell(ix, row, FieldMajorExpense),
			Method:        cell(ix, row, FieldMethod),
			SubsidyRate:   cell(ix, row, FieldSubsidyText),
		}

		// Old-style project numbers are split over up to five columns;
		// they are rejoined with hyphens.
		var parts []string
		for seq := 1; seq <= 5; seq++ {
			if v := cellAt(ix, row, FieldProjectNumber, "", seq); v != "" {
				parts = append(parts, v)
			}
		}
		rec.LegacyProjectNo = strings.Join(parts, "-")

		rec.StartYear = util.ParseYear(cell(ix, row, FieldStartYear))
		rec.StartYearUnknown = cell(ix, row, FieldStartYearUnknown)
		rec.EndYear = util.ParseYear(cell(ix, row, FieldEndYear))
		rec.NoPlannedEnd = cell(ix, row, FieldNoPlannedEnd)

		out.Append(rec)
	}
}

var (
	reLawCitation = regexp.MustCompile(`([^(（]+)(?:\(([^)]+)\)|（([^）]+)）)?(?:第([0-9]+)条)?(?:第([0-9]+)項)?(?:第([0-9]+)号)?`)
	reURL         = regexp.MustCompile(`https?://[^\s、。]+`)
)

// assemblePolicyLaw emits up to three records per entity: the policy
// section, the parsed law citation and the related plan, each with its own
// section number and the other sections blank.
func assemblePolicyLaw(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	for i, row := range rows {
		common := commonFields(ix, row, bc, ids[i])

		if policy := clean(cell(ix, row, FieldPolicy)); policy != "" {
			out.Append(rsformat.PolicyLaw{
				Common:          common,
				PolicyNo:        "1",
				PolicyMinistryP: common.PolicyMinistry,
				Policy:          policy,
				Measure:         clean(cell(ix, row, FieldMeasure)),
				PolicyURL:       clean(cell(ix, row, FieldPolicyURL)),
			})
		}

		if law := clean(cell(ix, row, FieldLawText)); law != "" {
			rec := rsformat.PolicyLaw{Common: common, LawNo: "1"}
			if m := reLawCitation.FindStringSubmatch(law); m != nil {
				rec.LawName = strings.TrimSpace(m[1])
				if m[2] != "" {
					rec.LawNumber = strings.TrimSpace(m[2])
				} else {
					rec.LawNumber = strings.TrimSpace(m[3])
				}
				rec.Article = m[4]
				rec.Paragraph = m[5]
				rec.Item = m[6]
			}
			out.Append(rec)
		}

		if plan := clean(cell(ix, row, FieldPlanText)); plan != "" {
			rec := rsformat.PolicyLaw{Common: common, PlanNo: "1"}
			if url := reURL.FindString(plan); url != "" {
				rec.PlanURL = url
			}
			rec.PlanName = strings.TrimSpace(reURL.ReplaceAllString(plan, ""))
			out.Append(rec)
		}
	}
}

var (
	reSubsidyURL    = regexp.MustCompile(`https?://[^\s,、。]+`)
	reSubsidyTarget = regexp.MustCompile(`補助対象[：:]\s*([^補助率]+)`)
	reSubsidyRates  = []*regexp.Regexp{
		regexp.MustCompile(`補助率[：:]\s*([^\s、,]+)`),
		regexp.MustCompile(`([0-9]+/[0-9]+)`),
		regexp.MustCompile(`(定額)`),
		regexp.MustCompile(`([0-9]+%)`),
	}
	reSubsidyLimits = []*regexp.Regexp{
		regexp.MustCompile(`補助上限[：:]\s*([^\s、,]+)`),
		regexp.MustCompile(`上限額?[：:]\s*([^\s、,]+)`),
		regexp.MustCompile(`上限[：:]\s*([^\s、,]+)`),
	}
)

// assembleSubsidyRate pulls the target, rate and cap out of the free-form
// 補助率等 text. Unparseable short texts land in the rate column, long ones
// in the target column.
func assembleSubsidyRate(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	if _, ok := ix.Singleton(FieldSubsidyText); !ok {
		return
	}
	for i, row := range rows {
		text := clean(cell(ix, row, FieldSubsidyText))
		if text == "" {
			continue
		}

		url := reSubsidyURL.FindString(text)
		body := strings.TrimSpace(reSubsidyURL.ReplaceAllString(text, ""))

		rec := rsformat.SubsidyRate{
			Common: commonFields(ix, row, bc, ids[i]),
			No:     1,
			URL:    url,
		}
		if m := reSubsidyTarget.FindStringSubmatch(body); m != nil {
			rec.Target = strings.TrimSpace(m[1])
		}
		for _, re := range reSubsidyRates {
			if m := re.FindStringSubmatch(body); m != nil {
				rec.Rate = strings.TrimSpace(m[1])
				break
			}
		}
		for _, re := range reSubsidyLimits {
			if m := re.FindStringSubmatch(body); m != nil {
				rec.Limit = strings.TrimSpace(m[1])
				break
			}
		}
		if rec.Target == "" && rec.Rate == "" && rec.Limit == "" {
			if len([]rune(body)) < 100 {
				rec.Rate = body
			} else {
				rec.Target = body
			}
		}
		out.Append(rec)
	}
}

func assembleRelatedProjects(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	cols := ix.RelatedColumns()
	if len(cols) == 0 {
		return
	}
	for i, row := range rows {
		seq := 1
		for _, rc := range cols {
			v := clean(strings.TrimSpace(row.Get(rc.Header)))
			if v == "" {
				continue
			}
			out.Append(rsformat.RelatedProject{
				Common:    commonFields(ix, row, bc, ids[i]),
				No:        seq,
				RelatedID: v,
				Relation:  fmt.Sprintf("%d年度過去事業", rc.Year),
			})
			seq++
		}
	}
}
