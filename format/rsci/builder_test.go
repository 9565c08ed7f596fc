package rsci

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/rsciexport/format"
	"github.com/lehigh-university-libraries/rsciexport/fulltext"
	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

const articleText = "Vestnik 12(3). Введение body text Литература 1. Ref"

var (
	sectionArticles = &source.Section{
		ID:      100,
		Titles:  source.Localized{"ru_RU": "Статьи", "en_US": "Articles"},
		Abbrevs: source.Localized{"ru_RU": "RAR", "en_US": "ART"},
	}
	sectionReviews = &source.Section{
		ID:      200,
		Titles:  source.Localized{"ru_RU": "Обзоры", "en_US": "Reviews"},
		Abbrevs: source.Localized{"ru_RU": "REV"},
	}
)

// testBundle returns an issue whose articles are stored out of page order:
// 501 (p. 17), 503 (p. 31), 502 (p. 1), 504 (p. 31).
func testBundle() *source.Bundle {
	review := &source.Submission{
		Article: &source.Article{
			ID:            501,
			PublicationID: 601,
			SectionID:     200,
			Status:        source.StatusPublished,
			Locale:        "ru_RU",
			Titles:        source.Localized{"ru_RU": "Обзор методов", "en_US": "A review of methods"},
			Abstracts: source.Localized{
				"ru_RU": "<p>Краткое описание.</p>",
				"en_US": "<p>Short <b>summary</b> &amp; outlook.</p>",
			},
			Pages:         "17-30",
			DateSubmitted: "2023-01-15 10:00:00",
			DOI:           "10.1234/vestnik.2023.501",
		},
		Section: sectionReviews,
		Authors: []source.Author{
			{
				Seq:          0,
				GivenNames:   source.Localized{"ru_RU": "Иван Петрович", "en_US": "Ivan Petrovich"},
				FamilyNames:  source.Localized{"ru_RU": "Иванов", "en_US": "Ivanov"},
				Affiliations: source.Localized{"ru_RU": "МГУ, Москва, Россия", "en_US": "MSU, Moscow, Russia"},
				ORCID:        "https://orcid.org/0000-0001-2345-6789",
				Email:        "ivanov@example.org",
				Country:      "RU",
			},
			{
				Seq:         1,
				GivenNames:  source.Localized{"en_US": "Anna"},
				FamilyNames: source.Localized{"en_US": "Smith"},
				Email:       "null@null.null",
			},
		},
		Citations: []source.Citation{{Seq: 0, Raw: "First reference"}, {Seq: 1, Raw: "Second reference"}},
		Keywords: map[string][]string{
			"ru_RU": {"обзор", "методы"},
			"en_US": {"review", "methods"},
		},
		Agencies: map[string][]string{"en_US": {"Science Foundation", "Other Fund"}},
		Subjects: []string{"519.6", "004.4"},
		Galleys: []source.Galley{{
			ID:    701,
			Label: "PDF",
			File:  &source.SubmissionFile{Path: "journals/1/review.pdf", Names: source.Localized{"ru_RU": "", "en_US": "review.pdf"}},
		}},
	}
	late := &source.Submission{
		Article: &source.Article{ID: 503, PublicationID: 603, SectionID: 100, Locale: "ru_RU", Pages: "31-40",
			Titles: source.Localized{"ru_RU": "Поздняя статья"}},
		Section: sectionArticles,
		Galleys: []source.Galley{{ID: 703, Label: "HTML", File: &source.SubmissionFile{Path: "journals/1/late.html"}}},
	}
	first := &source.Submission{
		Article: &source.Article{ID: 502, PublicationID: 602, SectionID: 100, Locale: "en_US", Pages: "1-16",
			Titles: source.Localized{"en_US": "First article"}},
		Section:   sectionArticles,
		Citations: []source.Citation{{Raw: "###"}, {Raw: "Hidden reference"}},
	}
	tie := &source.Submission{
		Article: &source.Article{ID: 504, PublicationID: 604, SectionID: 100, Locale: "ru_RU", Pages: "31-35",
			Titles: source.Localized{"ru_RU": "Та же страница"}},
		Section: sectionArticles,
	}

	return &source.Bundle{
		Journal: &source.Journal{
			ID:               1,
			Path:             "vestnik",
			PrintISSN:        "1234-5678",
			Names:            source.Localized{"ru_RU": "Вестник", "en_US": "Herald"},
			PrimaryLocale:    "ru_RU",
			SupportedLocales: []string{"ru_RU", "en_US"},
		},
		Issue: &source.Issue{
			ID: 10, JournalID: 1, Volume: "12", Number: "3", Year: 2023,
			CoverImages: source.Localized{"ru_RU": "cover_ru.jpg", "en_US": "cover_en.jpg"},
		},
		Submissions: []*source.Submission{review, late, first, tie},
	}
}

func testSettings() *format.ExportSettings {
	return &format.ExportSettings{
		ArtTypeFromSectionAbbrev: true,
		ExportSections:           true,
		JournalTitleID:           "T-1",
		DocStartKey:              "Введение",
		DocEndKey:                "Литература",
		LangCitation:             true,
	}
}

func testOptions(settings *format.ExportSettings, warnings notify.Sink) *format.SerializeOptions {
	opts := format.NewSerializeOptions(settings)
	opts.Warnings = warnings
	opts.Linker = format.PathLinker{BaseURL: "https://journals.example.org"}
	opts.Extractor = fulltext.ExtractorFunc(func(path string) (string, error) {
		if path == "journals/1/review.pdf" {
			return articleText, nil
		}
		return "", errors.New("no such file")
	})
	return opts
}

func articles(t *testing.T, doc *XMLJournal) map[int64]*XMLArticle {
	t.Helper()
	byPages := map[string]int64{"17-30": 501, "31-40": 503, "1-16": 502, "31-35": 504}
	out := make(map[int64]*XMLArticle)
	for _, item := range doc.Issue.Articles.Items {
		if a, ok := item.(*XMLArticle); ok {
			out[byPages[a.Pages]] = a
		}
	}
	require.Len(t, out, 4)
	return out
}

func TestBuildCurrent(t *testing.T) {
	collector := notify.NewCollector()
	doc, err := Build(SchemaCurrent, testBundle(), testOptions(testSettings(), collector))
	require.NoError(t, err)

	assert.Equal(t, "T-1", doc.TitleID)
	assert.Equal(t, "1234-5678", doc.ISSN)
	assert.Empty(t, doc.EISSN)
	assert.Equal(t, XMLJournalInfo{Lang: "RUS", Title: "Вестник"}, doc.JournalInfo)

	issue := doc.Issue
	assert.Equal(t, "12", issue.Volume)
	assert.Equal(t, "3", issue.Number)
	assert.Equal(t, "2023", issue.DateUni)
	assert.Equal(t, "1-40", issue.Pages)
	require.NotNil(t, issue.Files)
	assert.Equal(t, []XMLFile{{Desc: "cover", Name: "cover_ru.jpg"}}, issue.Files.Files)

	arts := articles(t, doc)
	review := arts[501]

	assert.Equal(t, "REV", review.ArtType)
	assert.Equal(t, "RAR", arts[502].ArtType)

	require.Len(t, review.Authors.Authors, 2)
	ivanov := review.Authors.Authors[0]
	assert.Equal(t, "1", ivanov.Num)
	require.NotNil(t, ivanov.AuthorCodes)
	assert.Equal(t, "0000-0001-2345-6789", ivanov.AuthorCodes.ORCID)
	assert.Equal(t, []XMLIndividInfo{
		{Lang: "RUS", Surname: "Иванов", Initials: "И. П.", OrgName: "МГУ, Москва, Россия", Email: "ivanov@example.org", Address: "Российская Федерация"},
		{Lang: "ENG", Surname: "Ivanov", Initials: "I. P.", OrgName: "MSU, Moscow, Russia", Email: "ivanov@example.org", Address: "Russian Federation"},
	}, ivanov.Infos)

	smith := review.Authors.Authors[1]
	assert.Equal(t, "2", smith.Num)
	assert.Nil(t, smith.AuthorCodes)
	require.Len(t, smith.Infos, 2)
	assert.Empty(t, smith.Infos[1].Email, "null e-mail is omitted")
	assert.Empty(t, smith.Infos[1].Address)
	assert.Equal(t, "A.", smith.Infos[1].Initials)

	assert.Equal(t, []XMLLangText{{Lang: "RUS", Value: "Обзор методов"}, {Lang: "ENG", Value: "A review of methods"}}, review.ArtTitles.Titles)
	assert.Equal(t, []XMLLangText{{Lang: "RUS", Value: "Краткое описание."}, {Lang: "ENG", Value: "Short summary & outlook."}}, review.Abstracts.Abstracts)

	require.NotNil(t, review.Text)
	assert.Equal(t, XMLLangText{Lang: "RUS", Value: "Введение body text "}, *review.Text)

	assert.Equal(t, XMLCodes{UDK: "519.6", DOI: "10.1234/vestnik.2023.501"}, review.Codes)
	assert.Equal(t, []XMLKwdGroup{
		{Lang: "RUS", Keywords: []string{"обзор", "методы"}},
		{Lang: "ENG", Keywords: []string{"review", "methods"}},
	}, review.Keywords.Groups)

	assert.Equal(t, []XMLReference{
		{RefInfo: XMLRefInfo{Lang: "ANY", Text: "First reference"}},
		{RefInfo: XMLRefInfo{Lang: "ANY", Text: "Second reference"}},
	}, review.References.References)

	require.NotNil(t, review.Dates)
	assert.Equal(t, "2023-01-15", review.Dates.DateReceived)

	require.NotNil(t, review.Fundings)
	assert.Equal(t, []XMLLangText{{Lang: "RUS", Value: ""}, {Lang: "ENG", Value: "Science Foundation"}}, review.Fundings.Fundings)

	require.NotNil(t, review.Files)
	assert.Equal(t, XMLFURL{
		Location: "publisher",
		Version:  "published",
		URL:      "https://journals.example.org/index.php/vestnik/article/view/501/701",
	}, review.Files.FURL)
	assert.Equal(t, &XMLFile{Desc: "fullText", Name: "review.pdf"}, review.Files.File)

	first := arts[502]
	assert.Empty(t, first.References.References, "### stops the reference list")
	assert.Nil(t, first.Files, "no PDF galley")
	assert.Nil(t, first.Dates)
	require.NotNil(t, first.Text)
	assert.Equal(t, XMLLangText{Lang: "ENG"}, *first.Text)
	assert.Equal(t, XMLCodes{}, first.Codes)

	assert.Nil(t, arts[503].Files, "galley not labelled PDF")

	var codes []string
	for _, w := range collector.Warnings() {
		codes = append(codes, w.Code)
		if w.Code == notify.CodeCountry {
			assert.Equal(t, int64(501), w.ArticleID)
		}
	}
	assert.Equal(t, []string{notify.CodeCountry}, codes)
}

func TestBuildSectionsAndOrder(t *testing.T) {
	doc, err := Build(SchemaCurrent, testBundle(), testOptions(testSettings(), nil))
	require.NoError(t, err)

	var sequence []string
	for _, item := range doc.Issue.Articles.Items {
		switch v := item.(type) {
		case *XMLSection:
			sequence = append(sequence, "section:"+v.Titles[1].Value)
		case *XMLArticle:
			sequence = append(sequence, "article:"+v.Pages)
		}
	}
	assert.Equal(t, []string{
		"section:Articles", "article:1-16",
		"section:Reviews", "article:17-30",
		"section:Articles", "article:31-40", "article:31-35",
	}, sequence)

	section := doc.Issue.Articles.Items[0].(*XMLSection)
	assert.Equal(t, []XMLLangText{{Lang: "RUS", Value: "Статьи"}, {Lang: "ENG", Value: "Articles"}}, section.Titles)
}

func TestBuildWithoutSections(t *testing.T) {
	settings := testSettings()
	settings.ExportSections = false
	settings.ArtTypeFromSectionAbbrev = false

	doc, err := Build(SchemaCurrent, testBundle(), testOptions(settings, nil))
	require.NoError(t, err)

	require.Len(t, doc.Issue.Articles.Items, 4)
	for _, item := range doc.Issue.Articles.Items {
		a, ok := item.(*XMLArticle)
		require.True(t, ok)
		assert.Equal(t, "RAR", a.ArtType)
	}
}

func TestBuildLegacy(t *testing.T) {
	collector := notify.NewCollector()
	doc, err := Build(SchemaLegacy, testBundle(), testOptions(testSettings(), collector))
	require.NoError(t, err)

	arts := articles(t, doc)
	review := arts[501]

	ivanov := review.Authors.Authors[0]
	assert.Equal(t, "001", ivanov.Num)
	assert.Equal(t, "002", review.Authors.Authors[1].Num)
	assert.Equal(t, "МГУ", ivanov.Infos[0].OrgName)
	assert.Equal(t, "Москва, Россия", ivanov.Infos[0].Address)
	assert.Equal(t, "MSU", ivanov.Infos[1].OrgName)
	assert.Equal(t, "Moscow, Russia", ivanov.Infos[1].Address)

	assert.Nil(t, review.Text)
	assert.Nil(t, review.Dates)
	assert.Nil(t, review.Fundings)
	assert.Equal(t, XMLCodes{DOI: "10.1234/vestnik.2023.501"}, review.Codes)
	assert.Equal(t, "RUS", review.References.References[0].RefInfo.Lang)
	assert.Equal(t, "https://journals.example.org/index.php/vestnik/article/view/501", review.Files.FURL.URL)

	assert.Empty(t, arts[502].References.References, "### stops the reference list")

	assert.Zero(t, collector.Len())
}

func TestBuildNamesAsIs(t *testing.T) {
	settings := testSettings()
	settings.NamesAsIs = true

	doc, err := Build(SchemaCurrent, testBundle(), testOptions(settings, nil))
	require.NoError(t, err)

	ivanov := articles(t, doc)[501].Authors.Authors[0]
	assert.Equal(t, "Иван Петрович", ivanov.Infos[0].Initials)
	assert.Equal(t, "Ivan Petrovich", ivanov.Infos[1].Initials)
}

func TestBuildNotExportable(t *testing.T) {
	bundle := testBundle()
	bundle.Submissions = nil

	doc, err := Build(SchemaCurrent, bundle, testOptions(testSettings(), nil))
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, ErrNotExportable))
}

func TestBuildInvalidInput(t *testing.T) {
	opts := testOptions(testSettings(), nil)

	_, err := Build(SchemaCurrent, nil, opts)
	assert.True(t, errors.Is(err, format.ErrInvalidSettings))

	_, err = Build(SchemaCurrent, &source.Bundle{Journal: &source.Journal{}}, opts)
	assert.True(t, errors.Is(err, format.ErrInvalidSettings))

	_, err = Build(SchemaCurrent, testBundle(), nil)
	assert.True(t, errors.Is(err, format.ErrInvalidSettings))

	_, err = Build(SchemaCurrent, testBundle(), testOptions(nil, nil))
	assert.True(t, errors.Is(err, format.ErrInvalidSettings))

	bundle := testBundle()
	bundle.Submissions = append(bundle.Submissions, &source.Submission{})
	_, err = Build(SchemaCurrent, bundle, opts)
	assert.True(t, errors.Is(err, format.ErrInvalidSettings))
}

func TestBuildRecoverableProblems(t *testing.T) {
	bundle := testBundle()
	bundle.Journal.SupportedLocales = []string{"ru_RU", "en_US", "xx_XX"}
	bundle.Submissions[0].Galleys[0].File.Path = "journals/1/missing.pdf"
	bundle.Submissions[0].DateSubmitted = "unknown"
	bundle.Submissions[2].Pages = ""

	collector := notify.NewCollector()
	doc, err := Build(SchemaCurrent, bundle, testOptions(testSettings(), collector))
	require.NoError(t, err)

	review := articles(t, doc)[501]
	assert.Equal(t, XMLLangText{Lang: "RUS"}, *review.Text, "unreadable PDF gives an empty excerpt")
	assert.Equal(t, "unknown", review.Dates.DateReceived)
	require.Len(t, review.ArtTitles.Titles, 3)
	assert.Equal(t, "", review.ArtTitles.Titles[2].Lang)
	assert.Equal(t, "0-40", doc.Issue.Pages)

	seen := map[string]bool{}
	for _, w := range collector.Warnings() {
		seen[w.Code] = true
	}
	for _, code := range []string{
		notify.CodeLocaleToISO,
		notify.CodeISOToLocale,
		notify.CodeFullText,
		notify.CodeSubmittedAt,
		notify.CodePages,
		notify.CodeCountry,
	} {
		assert.True(t, seen[code], code)
	}
}

func TestBuildEmptyStartKeySkipsExtraction(t *testing.T) {
	settings := testSettings()
	settings.DocStartKey = ""

	opts := testOptions(settings, nil)
	opts.Extractor = fulltext.ExtractorFunc(func(string) (string, error) {
		t.Fatal("extractor called without a start key")
		return "", nil
	})

	doc, err := Build(SchemaCurrent, testBundle(), opts)
	require.NoError(t, err)
	assert.Equal(t, "", articles(t, doc)[501].Text.Value)
}

func TestBuildMissingGalleyFileName(t *testing.T) {
	bundle := testBundle()
	bundle.Submissions[0].Galleys[0].File = nil

	collector := notify.NewCollector()
	doc, err := Build(SchemaCurrent, bundle, testOptions(testSettings(), collector))
	require.NoError(t, err)

	files := articles(t, doc)[501].Files
	require.NotNil(t, files)
	assert.NotEmpty(t, files.FURL.URL)
	assert.Nil(t, files.File)

	var codes []string
	for _, w := range collector.Warnings() {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, notify.CodeGalleyFile)
}

func TestBuildSentinelNeedsLangCitation(t *testing.T) {
	settings := testSettings()
	settings.LangCitation = false

	for _, schema := range Schemas() {
		doc, err := Build(schema, testBundle(), testOptions(settings, nil))
		require.NoError(t, err, schema.Name)

		refs := articles(t, doc)[502].References.References
		require.Len(t, refs, 2, schema.Name)
		assert.Equal(t, "###", refs[0].RefInfo.Text, schema.Name)
	}
}
