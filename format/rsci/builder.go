package rsci

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/lehigh-university-libraries/rsciexport/format"
	"github.com/lehigh-university-libraries/rsciexport/fulltext"
	"github.com/lehigh-university-libraries/rsciexport/helpers"
	"github.com/lehigh-university-libraries/rsciexport/lang"
	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

// artTypes are the article types RSCI accepts.
var artTypes = []string{"ABS", "BRV", "CNF", "COR", "EDI", "MIS", "PER", "RAR", "REP", "REV", "SCO", "UNK"}

const (
	defaultArtType   = "RAR"
	anyLanguage      = "ANY"
	citationSentinel = "###"
	nullEmail        = "null@null.null"
)

// builder holds the state of one document build.
type builder struct {
	schema   Schema
	opts     *format.SerializeOptions
	settings *format.ExportSettings
	journal  *source.Journal
	codec    *lang.Codec
	langs    []string
}

// Build converts a resolved issue into an RSCI document. It returns
// ErrNotExportable when the issue has no published articles and never
// returns a partial document.
func Build(schema Schema, bundle *source.Bundle, opts *format.SerializeOptions) (*XMLJournal, error) {
	if bundle == nil || bundle.Journal == nil || bundle.Issue == nil {
		return nil, fmt.Errorf("%w: bundle without journal or issue", format.ErrInvalidSettings)
	}
	if opts == nil {
		return nil, fmt.Errorf("%w: options are nil", format.ErrInvalidSettings)
	}
	opts = opts.WithDefaults()
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if len(bundle.Submissions) == 0 {
		return nil, ErrNotExportable
	}
	for i, sub := range bundle.Submissions {
		if sub == nil || sub.Article == nil {
			return nil, fmt.Errorf("%w: submission %d has no article", format.ErrInvalidSettings, i)
		}
	}

	journal := bundle.Journal
	codec := lang.NewCodec(opts.Languages, journal.Locales(), journal.PrimaryLocale, opts.Warnings)

	b := &builder{
		schema:   schema,
		opts:     opts,
		settings: opts.Settings,
		journal:  journal,
		codec:    codec,
		langs:    codec.Languages(),
	}

	submissions := SortByStartingPage(bundle.Submissions)
	issue, err := b.issue(bundle.Issue, submissions)
	if err != nil {
		return nil, err
	}

	primary := journal.PrimaryLocale
	return &XMLJournal{
		TitleID: b.settings.JournalTitleID,
		ISSN:    journal.PrintISSN,
		EISSN:   journal.OnlineISSN,
		JournalInfo: XMLJournalInfo{
			Lang:  codec.ToISO639(primary),
			Title: journal.Names.First(primary),
		},
		Issue: *issue,
	}, nil
}

func (b *builder) issue(issue *source.Issue, submissions []*source.Submission) (*XMLIssue, error) {
	start, end, err := IssuePageRange(submissions)
	if err != nil {
		return nil, err
	}

	node := &XMLIssue{
		Volume: issue.Volume,
		Number: issue.Number,
		Pages:  fmt.Sprintf("%d-%d", start, end),
	}
	if issue.Year != 0 {
		node.DateUni = strconv.Itoa(issue.Year)
	}
	if cover := issue.CoverImages.First(b.journal.PrimaryLocale); cover != "" {
		node.Files = &XMLIssueFiles{Files: []XMLFile{{Desc: "cover", Name: cover}}}
	}

	previous := NoSection
	for _, sub := range submissions {
		if SectionChanged(b.settings.ExportSections, previous, sub.SectionID) {
			node.Articles.Items = append(node.Articles.Items, b.section(sub.Section))
		}
		node.Articles.Items = append(node.Articles.Items, b.article(sub))
		previous = sub.SectionID
	}
	return node, nil
}

func (b *builder) section(section *source.Section) *XMLSection {
	node := &XMLSection{}
	for _, code := range b.langs {
		var title string
		if section != nil {
			title = section.Titles.Get(b.codec.FromISO639(code))
		}
		node.Titles = append(node.Titles, XMLLangText{Lang: code, Value: title})
	}
	return node
}

func (b *builder) article(sub *source.Submission) *XMLArticle {
	warn := articleSink(b.opts.Warnings, sub.ID)

	if sub.StartingPage() == 0 {
		warn(notify.CodePages, sub.Pages,
			fmt.Sprintf("article pages %q have no starting page; the article is sorted first", sub.Pages))
	}

	node := &XMLArticle{
		Pages:   sub.Pages,
		ArtType: b.artType(sub.Section),
	}

	for i, author := range sub.Authors {
		node.Authors.Authors = append(node.Authors.Authors, b.author(author, i+1, warn))
	}

	for _, code := range b.langs {
		locale := b.codec.FromISO639(code)
		node.ArtTitles.Titles = append(node.ArtTitles.Titles, XMLLangText{Lang: code, Value: sub.Titles.Get(locale)})
		node.Abstracts.Abstracts = append(node.Abstracts.Abstracts, XMLLangText{
			Lang:  code,
			Value: helpers.StripMarkup(sub.Abstracts.Get(locale)),
		})
		node.Keywords.Groups = append(node.Keywords.Groups, XMLKwdGroup{Lang: code, Keywords: sub.Keywords[locale]})
	}

	if b.schema.FullText {
		node.Text = b.text(sub, warn)
	}

	node.Codes.DOI = sub.DOI
	if b.schema.UDK && len(sub.Subjects) > 0 {
		node.Codes.UDK = sub.Subjects[0]
	}

	node.References = b.references(sub.Citations)

	if b.schema.Dates && sub.DateSubmitted != "" {
		date, ok := helpers.DatePart(sub.DateSubmitted)
		if !ok {
			warn(notify.CodeSubmittedAt, sub.DateSubmitted,
				fmt.Sprintf("cannot parse submission date %q; using %q", sub.DateSubmitted, date))
		}
		node.Dates = &XMLDates{DateReceived: date}
	}

	if b.schema.Fundings {
		node.Fundings = b.fundings(sub)
	}

	node.Files = b.files(sub, warn)
	return node
}

func (b *builder) artType(section *source.Section) string {
	if !b.settings.ArtTypeFromSectionAbbrev || section == nil {
		return defaultArtType
	}
	abbrev := section.Abbrevs.Get(b.journal.PrimaryLocale)
	if slices.Contains(artTypes, abbrev) {
		return abbrev
	}
	return defaultArtType
}

func (b *builder) author(author source.Author, num int, warn warnFunc) XMLAuthor {
	node := XMLAuthor{Num: strconv.Itoa(num)}
	if b.schema.PadAuthorNumbers {
		node.Num = fmt.Sprintf("%03d", num)
	}
	if orcid := helpers.ORCIDCode(author.ORCID); orcid != "" {
		node.AuthorCodes = &XMLAuthorCodes{ORCID: orcid}
	}

	email := author.Email
	if email == nullEmail {
		email = ""
	}

	countryWarned := false
	for _, code := range b.langs {
		locale := b.codec.FromISO639(code)
		family := author.FamilyNames.Get(locale)
		given := author.GivenNames.Get(locale)

		info := XMLIndividInfo{
			Lang:     code,
			Surname:  family,
			Initials: helpers.Initials(given),
			Email:    email,
		}
		if b.settings.NamesAsIs {
			info.Initials = given
		}

		affiliation := author.Affiliations.Get(locale)
		if b.schema.ParseAffiliations {
			parsed := helpers.ParseAffiliation(affiliation)
			info.OrgName = parsed.Organization
			info.Address = parsed.Address
			if affiliation != "" && parsed.Address == "" {
				warn(notify.CodeAffiliation, affiliation,
					fmt.Sprintf("no address found in affiliation of %s", family))
			}
		} else {
			info.OrgName = affiliation
			name, ok := b.opts.Countries.Name(author.Country, locale)
			if ok {
				info.Address = name
			} else if !countryWarned {
				countryWarned = true
				warn(notify.CodeCountry, author.Country,
					fmt.Sprintf("no country name for author %s (country %q); address omitted", family, author.Country))
			}
		}

		node.Infos = append(node.Infos, info)
	}
	return node
}

func (b *builder) text(sub *source.Submission, warn warnFunc) *XMLLangText {
	locale := sub.Locale
	if locale == "" {
		locale = b.journal.PrimaryLocale
	}
	node := &XMLLangText{Lang: b.codec.ToISO639(locale)}

	if b.settings.DocStartKey == "" {
		return node
	}
	galley := sub.PDFGalley()
	if galley == nil || galley.File == nil {
		return node
	}
	file := galley.File
	text, err := b.opts.Extractor.Text(file.Path)
	if err != nil {
		warn(notify.CodeFullText, file.Path, fmt.Sprintf("cannot extract full text: %v", err))
		return node
	}
	node.Value = fulltext.Excerpt(text, b.settings.DocStartKey, b.settings.DocEndKey)
	return node
}

func (b *builder) references(citations []source.Citation) XMLReferences {
	code := anyLanguage
	if b.schema.PrimaryCitationLanguage {
		code = b.codec.ToISO639(b.journal.PrimaryLocale)
	}

	var node XMLReferences
	for _, citation := range citations {
		if b.schema.CitationSentinel && b.settings.LangCitation && citation.Raw == citationSentinel {
			break
		}
		node.References = append(node.References, XMLReference{
			RefInfo: XMLRefInfo{Lang: code, Text: citation.Raw},
		})
	}
	return node
}

func (b *builder) fundings(sub *source.Submission) *XMLFundings {
	node := &XMLFundings{}
	for _, code := range b.langs {
		var agency string
		if agencies := sub.Agencies[b.codec.FromISO639(code)]; len(agencies) > 0 {
			agency = agencies[0]
		}
		node.Fundings = append(node.Fundings, XMLLangText{Lang: code, Value: agency})
	}
	return node
}

func (b *builder) files(sub *source.Submission, warn warnFunc) *XMLArticleFiles {
	galley := sub.PDFGalley()
	if galley == nil {
		return nil
	}

	var galleyID int64
	if b.schema.GalleyURL {
		galleyID = galley.ID
	}
	node := &XMLArticleFiles{
		FURL: XMLFURL{
			Location: "publisher",
			Version:  "published",
			URL:      b.opts.Linker.ArticleURL(b.journal, sub.ID, galleyID),
		},
	}

	name := galley.File.Name(b.journal.PrimaryLocale)
	if name == "" {
		warn(notify.CodeGalleyFile, strconv.FormatInt(galley.ID, 10), "PDF galley has no file name")
		return node
	}
	node.File = &XMLFile{Desc: "fullText", Name: name}
	return node
}

type warnFunc func(code, subject, message string)

func articleSink(sink notify.Sink, articleID int64) warnFunc {
	return func(code, subject, message string) {
		sink.Warn(notify.Warning{Code: code, Subject: subject, ArticleID: articleID, Message: message})
	}
}
