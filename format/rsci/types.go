package rsci

import "encoding/xml"

// XML types for the RSCI document. Field order is element order.

type XMLJournal struct {
	XMLName     xml.Name       `xml:"journal"`
	TitleID     string         `xml:"titleid"`
	ISSN        string         `xml:"issn,omitempty"`
	EISSN       string         `xml:"essn,omitempty"`
	JournalInfo XMLJournalInfo `xml:"journalInfo"`
	Issue       XMLIssue       `xml:"issue"`
}

type XMLJournalInfo struct {
	Lang  string `xml:"lang,attr"`
	Title string `xml:"title"`
}

type XMLIssue struct {
	Volume   string         `xml:"volume"`
	Number   string         `xml:"number"`
	DateUni  string         `xml:"dateUni"`
	Pages    string         `xml:"pages"`
	Files    *XMLIssueFiles `xml:"files"`
	Articles XMLArticles    `xml:"articles"`
}

type XMLIssueFiles struct {
	Files []XMLFile `xml:"file"`
}

type XMLFile struct {
	Desc string `xml:"desc,attr"`
	Name string `xml:",chardata"`
}

// XMLArticles holds section and article nodes in document order.
type XMLArticles struct {
	Items []ArticlesItem
}

// ArticlesItem is a child of the articles node: *XMLSection or *XMLArticle.
type ArticlesItem interface {
	articlesItem()
}

type XMLSection struct {
	XMLName xml.Name      `xml:"section"`
	Titles  []XMLLangText `xml:"secTitle"`
}

func (*XMLSection) articlesItem() {}

// XMLLangText is a language-tagged text element.
type XMLLangText struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

type XMLArticle struct {
	XMLName    xml.Name         `xml:"article"`
	Pages      string           `xml:"pages"`
	ArtType    string           `xml:"artType"`
	Authors    XMLAuthors       `xml:"authors"`
	ArtTitles  XMLArtTitles     `xml:"artTitles"`
	Abstracts  XMLAbstracts     `xml:"abstracts"`
	Text       *XMLLangText     `xml:"text"`
	Codes      XMLCodes         `xml:"codes"`
	Keywords   XMLKeywords      `xml:"keywords"`
	References XMLReferences    `xml:"references"`
	Dates      *XMLDates        `xml:"dates"`
	Fundings   *XMLFundings     `xml:"fundings"`
	Files      *XMLArticleFiles `xml:"files"`
}

func (*XMLArticle) articlesItem() {}

type XMLAuthors struct {
	Authors []XMLAuthor `xml:"author"`
}

type XMLAuthor struct {
	Num         string           `xml:"num,attr"`
	AuthorCodes *XMLAuthorCodes  `xml:"authorCodes"`
	Infos       []XMLIndividInfo `xml:"individInfo"`
}

type XMLAuthorCodes struct {
	ORCID string `xml:"orcid"`
}

type XMLIndividInfo struct {
	Lang     string `xml:"lang,attr"`
	Surname  string `xml:"surname"`
	Initials string `xml:"initials"`
	OrgName  string `xml:"orgName"`
	Email    string `xml:"email,omitempty"`
	Address  string `xml:"address,omitempty"`
}

type XMLArtTitles struct {
	Titles []XMLLangText `xml:"artTitle"`
}

type XMLAbstracts struct {
	Abstracts []XMLLangText `xml:"abstract"`
}

type XMLCodes struct {
	UDK string `xml:"udk,omitempty"`
	DOI string `xml:"doi,omitempty"`
}

type XMLKeywords struct {
	Groups []XMLKwdGroup `xml:"kwdGroup"`
}

type XMLKwdGroup struct {
	Lang     string   `xml:"lang,attr"`
	Keywords []string `xml:"keyword"`
}

type XMLReferences struct {
	References []XMLReference `xml:"reference"`
}

type XMLReference struct {
	RefInfo XMLRefInfo `xml:"refInfo"`
}

type XMLRefInfo struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:"text"`
}

type XMLDates struct {
	DateReceived string `xml:"dateReceived"`
}

type XMLFundings struct {
	Fundings []XMLLangText `xml:"funding"`
}

type XMLArticleFiles struct {
	FURL XMLFURL  `xml:"furl"`
	File *XMLFile `xml:"file"`
}

type XMLFURL struct {
	Location string `xml:"location,attr"`
	Version  string `xml:"version,attr"`
	URL      string `xml:",chardata"`
}
