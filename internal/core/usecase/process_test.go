package usecase

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/syllabus-stats/internal/core/aggregate"
	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

func pagedContent(pages ...string) (string, []int) {
	var b strings.Builder
	starts := make([]int, 0, len(pages))
	for _, page := range pages {
		starts = append(starts, b.Len())
		b.WriteString(page)
	}
	return b.String(), starts
}

func newProcessUC(host *hostFake) (*ProcessDocumentUseCase, *aggregate.Store, *observerFake) {
	store := aggregate.NewStore()
	observer := &observerFake{}
	uc := NewProcessDocumentUseCase(host, store, domain.DefaultLayoutProfile(), observer, nil)
	return uc, store, observer
}

func TestProcessAIUSUsesParagraphsHeaderAndHoursTable(t *testing.T) {
	page1 := "МИНОБРНАУКИ\rРАБОЧАЯ ПРОГРАММА УЧЕБНОЙ ДИСЦИПЛИНЫ\r«Базы данных»\r(название дисциплины)\rАвтор: Иванов И.И., доцент\r"
	content, starts := pagedContent(page1, "Объём дисциплины\r")
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		paragraphs: strings.Split(strings.TrimSuffix(page1, "\r"), "\r"),
		tables: []domain.Table{
			{}, {},
			{Rows: [][]string{{"", ""}, {"", ""}, {"Часы", "экз. 72\r36\r\a"}}},
		},
	}
	path := "/data/РП АИУС Базы данных.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if outcome.Failed() {
		t.Fatalf("unexpected failure: %v", outcome.Err)
	}
	if outcome.Family != "aius" || !outcome.Recorded {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	// The header discipline is not cleaned in the AIUS field pass, while the
	// hours pass cleans it.
	if got := store.AuthorDisciplines(); !reflect.DeepEqual(got, map[string][]string{"Иванов И.И.": {"«Базы данных»"}}) {
		t.Fatalf("unexpected author disciplines %+v", got)
	}
	if got := store.DisciplineMentions(); !reflect.DeepEqual(got, map[string]int{"«Базы данных»": 1}) {
		t.Fatalf("unexpected mentions %+v", got)
	}
	if got := store.DisciplineHours(); !reflect.DeepEqual(got, map[string]int{"Базы данных": 108}) {
		t.Fatalf("unexpected hours %+v", got)
	}
	if doc.closed != 1 {
		t.Fatalf("expected document closed once, got %d", doc.closed)
	}
}

func TestProcessPIOAUsesFirstPageAnchorsAndSecondPageText(t *testing.T) {
	content, starts := pagedContent(
		"Титульный лист\r",
		"Трудоёмкость 36 академических часов\rИтого 72 часа\r",
		"Приложение 144 часа\r",
	)
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		pictures: []anchorAt{
			{text: " Петров П.П., профессор ", offset: 2},
			{text: "«Компьютерные сети»\r", offset: 5},
		},
		boxes: []anchorAt{{text: "вне первой страницы", offset: starts[1] + 3}},
	}
	path := "РП ПиОА Сети.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if outcome.Fields.Author != "Петров П.П." || outcome.Fields.Discipline != "Компьютерные сети" {
		t.Fatalf("unexpected fields %+v", outcome.Fields)
	}
	if got := store.DisciplineHours(); !reflect.DeepEqual(got, map[string]int{"Компьютерные сети": 72}) {
		t.Fatalf("expected hours from the second page only, got %+v", got)
	}
}

func TestProcessTSAUWithoutPagesRecordsNothing(t *testing.T) {
	doc := &documentFake{
		content:  "Сети (название дисциплины)\r",
		pictures: []anchorAt{{text: "Автор", offset: 0}},
	}
	path := "РП ТСАУ.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if outcome.Failed() || outcome.Recorded {
		t.Fatalf("expected nothing recorded, got %+v", outcome)
	}
	if len(store.DisciplineMentions()) != 0 || len(store.AuthorDisciplines()) != 0 || len(store.DisciplineHours()) != 0 {
		t.Fatalf("expected empty store, got %+v", store.Snapshot())
	}
}

func TestProcessDefaultSkipsFirstOfThreeAnchors(t *testing.T) {
	content, starts := pagedContent("Титул с логотипом\r", "всего 180 часов\r")
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		pictures: []anchorAt{
			{text: "logo", offset: 1},
			{text: "Сидоров С.С.", offset: 9},
		},
		// Positionally before the second picture, but anchors list pictures first.
		boxes: []anchorAt{{text: "«Теория автоматов»", offset: 4}},
	}
	path := "Теория автоматов.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if outcome.Family != "default" {
		t.Fatalf("expected default family, got %s", outcome.Family)
	}
	if outcome.Fields.Author != "Сидоров С.С." || outcome.Fields.Discipline != "Теория автоматов" {
		t.Fatalf("unexpected fields %+v", outcome.Fields)
	}
	if got := store.DisciplineHours(); !reflect.DeepEqual(got, map[string]int{"Теория автоматов": 180}) {
		t.Fatalf("unexpected hours %+v", got)
	}
}

func TestProcessDefaultSingleAnchorTakesDisciplineFromHeader(t *testing.T) {
	content, starts := pagedContent("Операционные системы (название дисциплины)\r")
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		pictures:   []anchorAt{{text: "Кузнецов К.К., ст. преподаватель", offset: 0}},
	}
	path := "os.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	uc.ProcessDocument(context.Background(), path)
	want := map[string][]string{"Кузнецов К.К.": {"Операционные системы"}}
	if got := store.AuthorDisciplines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected author disciplines %+v", got)
	}
}

func TestProcessDefaultFallsBackToAuthorTable(t *testing.T) {
	content, starts := pagedContent("Алгоритмы (название)\r")
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		tables: []domain.Table{
			{Rows: [][]string{{"Утверждаю\r\a", ""}}},
			{Rows: [][]string{{"Автор программы\r\a", "Смирнова А.А., доцент\r\a"}}},
		},
	}
	path := "alg.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	uc.ProcessDocument(context.Background(), path)
	want := map[string][]string{"Смирнова А.А.": {"Алгоритмы"}}
	if got := store.AuthorDisciplines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected author disciplines %+v", got)
	}
	if got := store.DisciplineHours(); len(got) != 0 {
		t.Fatalf("expected no hours for a single-page document, got %+v", got)
	}
}

func TestProcessDefaultHoursDisciplineDivergesFromFieldDiscipline(t *testing.T) {
	// Two anchors with a blank second one: the field pass falls back to the
	// header, the hours pass takes the blank anchor and records nothing.
	content, starts := pagedContent("Операционные системы (название дисциплины)\r", "36 часов\r")
	doc := &documentFake{
		content:    content,
		pageStarts: starts,
		pictures: []anchorAt{
			{text: "Кузнецов К.К.", offset: 1},
			{text: "   ", offset: 2},
		},
	}
	path := "os.docx"
	uc, store, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if outcome.Fields.Discipline != "Операционные системы" {
		t.Fatalf("expected header discipline, got %q", outcome.Fields.Discipline)
	}
	if outcome.HoursDiscipline != "" {
		t.Fatalf("expected no hours discipline, got %q", outcome.HoursDiscipline)
	}
	if got := store.DisciplineMentions(); !reflect.DeepEqual(got, map[string]int{"Операционные системы": 1}) {
		t.Fatalf("unexpected mentions %+v", got)
	}
	if got := store.DisciplineHours(); len(got) != 0 {
		t.Fatalf("expected no hours, got %+v", got)
	}
}

func TestProcessReportsHostFailure(t *testing.T) {
	uc, store, observer := newProcessUC(&hostFake{docs: map[string]*documentFake{}})

	outcome := uc.ProcessDocument(context.Background(), "locked.docx")
	if !outcome.Failed() {
		t.Fatalf("expected failure")
	}
	if !domain.IsKind(outcome.Err, domain.ErrHostFailure) {
		t.Fatalf("expected host failure kind, got %v", outcome.Err)
	}
	if outcome.Error == "" {
		t.Fatalf("expected error message in outcome")
	}
	if len(store.Snapshot().Disciplines) != 0 {
		t.Fatalf("expected empty store")
	}
	if observer.started != 1 || len(observer.finished) != 1 {
		t.Fatalf("expected observer start/finish, got %d/%d", observer.started, len(observer.finished))
	}
}

func TestProcessRecoversPanicAndReleasesDocument(t *testing.T) {
	content, starts := pagedContent("пусто\r")
	doc := &documentFake{content: content, pageStarts: starts, panicMsg: "table model broken"}
	path := "broken.docx"
	uc, _, _ := newProcessUC(&hostFake{docs: map[string]*documentFake{path: doc}})

	outcome := uc.ProcessDocument(context.Background(), path)
	if !domain.IsKind(outcome.Err, domain.ErrHostFailure) {
		t.Fatalf("expected host failure from panic, got %v", outcome.Err)
	}
	if !strings.Contains(outcome.Error, "table model broken") {
		t.Fatalf("expected panic message in error, got %q", outcome.Error)
	}
	if doc.closed != 1 {
		t.Fatalf("expected document closed after panic, got %d", doc.closed)
	}
}

func TestProcessCountsMentionsPerDocument(t *testing.T) {
	content, starts := pagedContent("Сети (название дисциплины)\r")
	docs := map[string]*documentFake{
		"a.docx": {content: content, pageStarts: starts, pictures: []anchorAt{{text: "Иванов И.И.", offset: 0}}},
		"b.docx": {content: content, pageStarts: starts, pictures: []anchorAt{{text: "Иванов И.И.", offset: 0}}},
		"c.docx": {content: content, pageStarts: starts},
	}
	uc, store, _ := newProcessUC(&hostFake{docs: docs})

	for _, path := range []string{"a.docx", "b.docx", "c.docx"} {
		uc.ProcessDocument(context.Background(), path)
	}
	if got := store.DisciplineMentions()["Сети"]; got != 3 {
		t.Fatalf("expected 3 mentions, got %d", got)
	}
	if got := store.AuthorDisciplines()["Иванов И.И."]; !reflect.DeepEqual(got, []string{"Сети"}) {
		t.Fatalf("expected a single discipline for the author, got %+v", got)
	}
}
