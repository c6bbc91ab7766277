package scripture

// spelling is a canonical name plus the abbreviations that resolve to it.
type spelling struct {
	name    string
	aliases []string
}

// bookRow is one line of the canonical table. The ordinal is a structural
// property of the canon and doubles as the storage key for a book.
type bookRow struct {
	ordinal int
	osis    string
	stem    string // short Korean abbreviation used in chapter file names
	ko      spelling
	en      spelling
	de      spelling
}

// canon lists the 66 books of the Protestant canon in canonical order.
var canon = []bookRow{
	// Old Testament
	{1, "Gen", "창", spelling{"창세기", []string{"창"}}, spelling{"Genesis", []string{"gen", "ge", "gn"}}, spelling{"1. Mose", []string{"1mo", "1mose", "gen", "genesis"}}},
	{2, "Exod", "출", spelling{"출애굽기", []string{"출"}}, spelling{"Exodus", []string{"ex", "exo", "exod"}}, spelling{"2. Mose", []string{"2mo", "2mose", "ex", "exodus"}}},
	{3, "Lev", "레", spelling{"레위기", []string{"레"}}, spelling{"Leviticus", []string{"lev", "lv"}}, spelling{"3. Mose", []string{"3mo", "3mose", "lev", "levitikus"}}},
	{4, "Num", "민", spelling{"민수기", []string{"민"}}, spelling{"Numbers", []string{"num", "nm"}}, spelling{"4. Mose", []string{"4mo", "4mose", "num", "numeri"}}},
	{5, "Deut", "신", spelling{"신명기", []string{"신"}}, spelling{"Deuteronomy", []string{"deut", "dt"}}, spelling{"5. Mose", []string{"5mo", "5mose", "dtn", "deuteronomium"}}},
	{6, "Josh", "수", spelling{"여호수아", []string{"수"}}, spelling{"Joshua", []string{"josh", "jos"}}, spelling{"Josua", []string{"jos"}}},
	{7, "Judg", "삿", spelling{"사사기", []string{"삿"}}, spelling{"Judges", []string{"judg", "jdg"}}, spelling{"Richter", []string{"ri"}}},
	{8, "Ruth", "룻", spelling{"룻기", []string{"룻"}}, spelling{"Ruth", []string{"ru", "rth"}}, spelling{"Rut", []string{"ruth"}}},
	{9, "1Sam", "삼상", spelling{"사무엘상", []string{"삼상"}}, spelling{"1 Samuel", []string{"1sam", "1sa"}}, spelling{"1. Samuel", []string{"1sam"}}},
	{10, "2Sam", "삼하", spelling{"사무엘하", []string{"삼하"}}, spelling{"2 Samuel", []string{"2sam", "2sa"}}, spelling{"2. Samuel", []string{"2sam"}}},
	{11, "1Kgs", "왕상", spelling{"열왕기상", []string{"왕상"}}, spelling{"1 Kings", []string{"1kgs", "1ki"}}, spelling{"1. Könige", []string{"1kön", "1koen", "1kg"}}},
	{12, "2Kgs", "왕하", spelling{"열왕기하", []string{"왕하"}}, spelling{"2 Kings", []string{"2kgs", "2ki"}}, spelling{"2. Könige", []string{"2kön", "2koen", "2kg"}}},
	{13, "1Chr", "대상", spelling{"역대상", []string{"대상", "역대기상"}}, spelling{"1 Chronicles", []string{"1chr", "1ch"}}, spelling{"1. Chronik", []string{"1chr"}}},
	{14, "2Chr", "대하", spelling{"역대하", []string{"대하", "역대기하"}}, spelling{"2 Chronicles", []string{"2chr", "2ch"}}, spelling{"2. Chronik", []string{"2chr"}}},
	{15, "Ezra", "스", spelling{"에스라", []string{"스"}}, spelling{"Ezra", []string{"ezr"}}, spelling{"Esra", []string{"esr"}}},
	{16, "Neh", "느", spelling{"느헤미야", []string{"느"}}, spelling{"Nehemiah", []string{"neh"}}, spelling{"Nehemia", []string{"neh"}}},
	{17, "Esth", "에", spelling{"에스더", []string{"에"}}, spelling{"Esther", []string{"esth", "est"}}, spelling{"Ester", []string{"est", "esther"}}},
	{18, "Job", "욥", spelling{"욥기", []string{"욥"}}, spelling{"Job", []string{"jb"}}, spelling{"Hiob", []string{"hi", "ijob"}}},
	{19, "Ps", "시", spelling{"시편", []string{"시"}}, spelling{"Psalms", []string{"ps", "psa", "pss", "psalm"}}, spelling{"Psalm", []string{"ps", "psalmen"}}},
	{20, "Prov", "잠", spelling{"잠언", []string{"잠"}}, spelling{"Proverbs", []string{"prov", "prv", "pr"}}, spelling{"Sprüche", []string{"spr", "sprueche"}}},
	{21, "Eccl", "전", spelling{"전도서", []string{"전"}}, spelling{"Ecclesiastes", []string{"eccl", "ecc", "qoh"}}, spelling{"Prediger", []string{"pred", "koh", "kohelet"}}},
	{22, "Song", "아", spelling{"아가", []string{"아"}}, spelling{"Song of Solomon", []string{"song", "sos", "songofsongs", "canticles"}}, spelling{"Hoheslied", []string{"hld", "hohelied"}}},
	{23, "Isa", "사", spelling{"이사야", []string{"사"}}, spelling{"Isaiah", []string{"isa", "is"}}, spelling{"Jesaja", []string{"jes"}}},
	{24, "Jer", "렘", spelling{"예레미야", []string{"렘"}}, spelling{"Jeremiah", []string{"jer"}}, spelling{"Jeremia", []string{"jer"}}},
	{25, "Lam", "애", spelling{"예레미야애가", []string{"애", "애가"}}, spelling{"Lamentations", []string{"lam"}}, spelling{"Klagelieder", []string{"klgl"}}},
	{26, "Ezek", "겔", spelling{"에스겔", []string{"겔"}}, spelling{"Ezekiel", []string{"ezek", "eze"}}, spelling{"Hesekiel", []string{"hes", "ez", "ezechiel"}}},
	{27, "Dan", "단", spelling{"다니엘", []string{"단"}}, spelling{"Daniel", []string{"dan", "dn"}}, spelling{"Daniel", []string{"dan"}}},
	{28, "Hos", "호", spelling{"호세아", []string{"호"}}, spelling{"Hosea", []string{"hos"}}, spelling{"Hosea", []string{"hos"}}},
	{29, "Joel", "욜", spelling{"요엘", []string{"욜"}}, spelling{"Joel", []string{"jl"}}, spelling{"Joel", []string{"joe"}}},
	{30, "Amos", "암", spelling{"아모스", []string{"암"}}, spelling{"Amos", []string{"am"}}, spelling{"Amos", []string{"am"}}},
	{31, "Obad", "옵", spelling{"오바댜", []string{"옵"}}, spelling{"Obadiah", []string{"obad", "ob"}}, spelling{"Obadja", []string{"obd"}}},
	{32, "Jonah", "욘", spelling{"요나", []string{"욘"}}, spelling{"Jonah", []string{"jon", "jnh"}}, spelling{"Jona", []string{"jon"}}},
	{33, "Mic", "미", spelling{"미가", []string{"미"}}, spelling{"Micah", []string{"mic"}}, spelling{"Micha", []string{"mi"}}},
	{34, "Nah", "나", spelling{"나훔", []string{"나"}}, spelling{"Nahum", []string{"nah"}}, spelling{"Nahum", []string{"nah"}}},
	{35, "Hab", "합", spelling{"하박국", []string{"합"}}, spelling{"Habakkuk", []string{"hab"}}, spelling{"Habakuk", []string{"hab"}}},
	{36, "Zeph", "습", spelling{"스바냐", []string{"습"}}, spelling{"Zephaniah", []string{"zeph", "zep"}}, spelling{"Zefanja", []string{"zef"}}},
	{37, "Hag", "학", spelling{"학개", []string{"학"}}, spelling{"Haggai", []string{"hag"}}, spelling{"Haggai", []string{"hag"}}},
	{38, "Zech", "슥", spelling{"스가랴", []string{"슥"}}, spelling{"Zechariah", []string{"zech", "zec"}}, spelling{"Sacharja", []string{"sach"}}},
	{39, "Mal", "말", spelling{"말라기", []string{"말"}}, spelling{"Malachi", []string{"mal"}}, spelling{"Maleachi", []string{"mal"}}},

	// New Testament
	{40, "Matt", "마", spelling{"마태복음", []string{"마", "마태"}}, spelling{"Matthew", []string{"matt", "mt"}}, spelling{"Matthäus", []string{"mt", "matt", "matthaeus"}}},
	{41, "Mark", "막", spelling{"마가복음", []string{"막", "마가"}}, spelling{"Mark", []string{"mk", "mrk"}}, spelling{"Markus", []string{"mk"}}},
	{42, "Luke", "눅", spelling{"누가복음", []string{"눅", "누가"}}, spelling{"Luke", []string{"lk", "luk"}}, spelling{"Lukas", []string{"lk"}}},
	{43, "John", "요", spelling{"요한복음", []string{"요", "요한"}}, spelling{"John", []string{"jn", "joh", "jhn"}}, spelling{"Johannes", []string{"joh"}}},
	{44, "Acts", "행", spelling{"사도행전", []string{"행"}}, spelling{"Acts", []string{"ac"}}, spelling{"Apostelgeschichte", []string{"apg"}}},
	{45, "Rom", "롬", spelling{"로마서", []string{"롬"}}, spelling{"Romans", []string{"rom", "ro"}}, spelling{"Römer", []string{"röm", "roem"}}},
	{46, "1Cor", "고전", spelling{"고린도전서", []string{"고전"}}, spelling{"1 Corinthians", []string{"1cor", "1co"}}, spelling{"1. Korinther", []string{"1kor"}}},
	{47, "2Cor", "고후", spelling{"고린도후서", []string{"고후"}}, spelling{"2 Corinthians", []string{"2cor", "2co"}}, spelling{"2. Korinther", []string{"2kor"}}},
	{48, "Gal", "갈", spelling{"갈라디아서", []string{"갈"}}, spelling{"Galatians", []string{"gal"}}, spelling{"Galater", []string{"gal"}}},
	{49, "Eph", "엡", spelling{"에베소서", []string{"엡"}}, spelling{"Ephesians", []string{"eph"}}, spelling{"Epheser", []string{"eph"}}},
	{50, "Phil", "빌", spelling{"빌립보서", []string{"빌"}}, spelling{"Philippians", []string{"phil", "php"}}, spelling{"Philipper", []string{"phil"}}},
	{51, "Col", "골", spelling{"골로새서", []string{"골"}}, spelling{"Colossians", []string{"col"}}, spelling{"Kolosser", []string{"kol"}}},
	{52, "1Thess", "살전", spelling{"데살로니가전서", []string{"살전"}}, spelling{"1 Thessalonians", []string{"1thess", "1th"}}, spelling{"1. Thessalonicher", []string{"1thess", "1thes"}}},
	{53, "2Thess", "살후", spelling{"데살로니가후서", []string{"살후"}}, spelling{"2 Thessalonians", []string{"2thess", "2th"}}, spelling{"2. Thessalonicher", []string{"2thess", "2thes"}}},
	{54, "1Tim", "딤전", spelling{"디모데전서", []string{"딤전"}}, spelling{"1 Timothy", []string{"1tim", "1ti"}}, spelling{"1. Timotheus", []string{"1tim"}}},
	{55, "2Tim", "딤후", spelling{"디모데후서", []string{"딤후"}}, spelling{"2 Timothy", []string{"2tim", "2ti"}}, spelling{"2. Timotheus", []string{"2tim"}}},
	{56, "Titus", "딛", spelling{"디도서", []string{"딛"}}, spelling{"Titus", []string{"tit"}}, spelling{"Titus", []string{"tit"}}},
	{57, "Phlm", "몬", spelling{"빌레몬서", []string{"몬"}}, spelling{"Philemon", []string{"philem", "phlm", "phm"}}, spelling{"Philemon", []string{"phlm"}}},
	{58, "Heb", "히", spelling{"히브리서", []string{"히"}}, spelling{"Hebrews", []string{"heb"}}, spelling{"Hebräer", []string{"hebr", "hebraeer"}}},
	{59, "Jas", "약", spelling{"야고보서", []string{"약"}}, spelling{"James", []string{"jas", "jm"}}, spelling{"Jakobus", []string{"jak"}}},
	{60, "1Pet", "벧전", spelling{"베드로전서", []string{"벧전"}}, spelling{"1 Peter", []string{"1pet", "1pe"}}, spelling{"1. Petrus", []string{"1petr", "1pet"}}},
	{61, "2Pet", "벧후", spelling{"베드로후서", []string{"벧후"}}, spelling{"2 Peter", []string{"2pet", "2pe"}}, spelling{"2. Petrus", []string{"2petr", "2pet"}}},
	{62, "1John", "요일", spelling{"요한일서", []string{"요일", "요한1서"}}, spelling{"1 John", []string{"1jn", "1jo"}}, spelling{"1. Johannes", []string{"1joh"}}},
	{63, "2John", "요이", spelling{"요한이서", []string{"요이", "요한2서"}}, spelling{"2 John", []string{"2jn", "2jo"}}, spelling{"2. Johannes", []string{"2joh"}}},
	{64, "3John", "요삼", spelling{"요한삼서", []string{"요삼", "요한3서"}}, spelling{"3 John", []string{"3jn", "3jo"}}, spelling{"3. Johannes", []string{"3joh"}}},
	{65, "Jude", "유", spelling{"유다서", []string{"유"}}, spelling{"Jude", []string{"jd"}}, spelling{"Judas", []string{"jud"}}},
	{66, "Rev", "계", spelling{"요한계시록", []string{"계", "계시록"}}, spelling{"Revelation", []string{"rev", "rv", "apocalypse"}}, spelling{"Offenbarung", []string{"offb"}}},
}

// spellingFor returns the row's spelling for a language.
func (r bookRow) spellingFor(lang Language) spelling {
	switch lang {
	case English:
		return r.en
	case German:
		return r.de
	default:
		return r.ko
	}
}
