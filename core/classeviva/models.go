package classeviva

// Domain records returned by the upstream ClasseViva REST service. They are
// read-only: fetched fresh per view and never mutated locally. Field names
// mirror the upstream JSON contract.

type Credentials struct {
	UID  string `json:"uid" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

// Identity is the minimal identity record extracted from a login response.
type Identity struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UsrType   string `json:"usrType"`
	UsrID     int    `json:"usrId"`
	Avatar    string `json:"avatar,omitempty"`
}

// Session is the authenticated identity returned by a successful login.
// It stays valid only while its token is accepted upstream (indefinitely in
// mock mode).
type Session struct {
	Token   string   `json:"token"`
	Release string   `json:"release"`
	Expire  string   `json:"expire"`
	Ident   Identity `json:"ident"`
}

// Status is the auth/status payload. Upstream does not pin its shape, so it
// is relayed as-is.
type Status map[string]interface{}

type Grade struct {
	SubjectID      int     `json:"subjectId"`
	SubjectCode    string  `json:"subjectCode"`
	SubjectDesc    string  `json:"subjectDesc"`
	EvtID          int     `json:"evtId"`
	EvtCode        string  `json:"evtCode"`
	EvtDate        string  `json:"evtDate"`
	DecimalValue   float64 `json:"decimalValue"`
	DisplayValue   string  `json:"displayValue"`
	DisplayPos     int     `json:"displaPos"`
	NotesForFamily string  `json:"notesForFamily"`
	Color          string  `json:"color"`
	Canceled       bool    `json:"canceled"`
	Underlined     bool    `json:"underlined"`
	PeriodPos      int     `json:"periodPos"`
	PeriodDesc     string  `json:"periodDesc"`
	ComponentPos   int     `json:"componentPos"`
	ComponentDesc  string  `json:"componentDesc"`
	WeightFactor   float64 `json:"weightFactor"`
	SkillID        int     `json:"skillId"`
	GradeMasterID  int     `json:"gradeMasterId"`
}

type Absence struct {
	EvtID            int    `json:"evtId"`
	EvtCode          string `json:"evtCode"`
	EvtDate          string `json:"evtDate"`
	EvtHPos          int    `json:"evtHPos"`
	EvtValue         string `json:"evtValue"`
	IsJustified      bool   `json:"isJustified"`
	JustifReasonCode string `json:"justifReasonCode"`
	JustifReasonDesc string `json:"justifReasonDesc"`
}

type AgendaEvent struct {
	EvtID            int    `json:"evtId"`
	EvtStart         string `json:"evtStart"`
	EvtEnd           string `json:"evtEnd"`
	EvtCode          string `json:"evtCode"`
	EvtDatetimeBegin string `json:"evtDatetimeBegin"`
	EvtDatetimeEnd   string `json:"evtDatetimeEnd"`
	ClassDesc        string `json:"classDesc"`
	AuthorName       string `json:"authorName"`
	SubjectID        int    `json:"subjectId"`
	SubjectCode      string `json:"subjectCode"`
	SubjectDesc      string `json:"subjectDesc"`
	EvtText          string `json:"evtText"`
	HomeworkText     string `json:"homeworkText,omitempty"`
}

type Lesson struct {
	EvtID       int    `json:"evtId"`
	EvtDate     string `json:"evtDate"`
	EvtHPos     int    `json:"evtHPos"`
	EvtDuration int    `json:"evtDuration"`
	ClassDesc   string `json:"classDesc"`
	AuthorName  string `json:"authorName"`
	SubjectID   int    `json:"subjectId"`
	SubjectCode string `json:"subjectCode"`
	SubjectDesc string `json:"subjectDesc"`
	LessonType  string `json:"lessonType"`
	LessonArg   string `json:"lessonArg"`
}

type Notice struct {
	PubID           int    `json:"pubId"`
	PubDT           string `json:"pubDT"`
	ReadStatus      bool   `json:"readStatus"`
	EvtCode         string `json:"evtCode"`
	CntValidFrom    string `json:"cntValidFrom"`
	CntValidTo      string `json:"cntValidTo"`
	CntValidInRange bool   `json:"cntValidInRange"`
	CntStatus       string `json:"cntStatus"`
	CntTitle        string `json:"cntTitle"`
	CntCategory     string `json:"cntCategory"`
	CntHasChanged   bool   `json:"cntHasChanged"`
	CntHasAttach    bool   `json:"cntHasAttach"`
	NeedJoin        bool   `json:"needJoin"`
	NeedReply       bool   `json:"needReply"`
	NeedFile        bool   `json:"needFile"`
	EventoID        int    `json:"evento_id"`
}

type SubjectTeacher struct {
	TeacherID        int    `json:"teacherId"`
	TeacherName      string `json:"teacherName"`
	TeacherFirstName string `json:"teacherFirstName"`
	TeacherLastName  string `json:"teacherLastName"`
}

type Subject struct {
	ID          int              `json:"id"`
	Description string           `json:"description"`
	Order       int              `json:"order"`
	Teachers    []SubjectTeacher `json:"teachers"`
}

type Period struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Avatar is a fetched avatar image.
type Avatar struct {
	Data        []byte
	ContentType string
}

// DashboardStats are the derived figures shown on the aggregate view.
type DashboardStats struct {
	TotalGrades    int     `json:"totalGrades"`
	AverageGrade   float64 `json:"averageGrade"`
	TotalAbsences  int     `json:"totalAbsences"`
	UpcomingEvents int     `json:"upcomingEvents"`
	TodayLessons   int     `json:"todayLessons"`
}
