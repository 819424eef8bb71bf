package mockdata

import "github.com/sysregister/sysregister/core/classeviva"

// The fixed demo dataset. No randomness anywhere: repeated calls return
// these exact values.

var fixtureSession = classeviva.Session{
	Release: "mock-v1",
	Expire:  "2100-01-01T00:00:00+01:00",
	Ident: classeviva.Identity{
		ID:        7654321,
		FirstName: "Marco",
		LastName:  "Rossi",
		UsrType:   "S",
		UsrID:     7654321,
	},
}

var fixtureAvatar = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="40" height="40"><rect width="40" height="40" fill="#e5e7eb"/><text x="20" y="26" text-anchor="middle" font-size="18">S</text></svg>`)

var fixtureGrades = []classeviva.Grade{
	{
		SubjectID: 101, SubjectCode: "MAT", SubjectDesc: "Matematica",
		EvtID: 9001, EvtCode: "GRV0", EvtDate: "2024-03-12",
		DecimalValue: 7.5, DisplayValue: "7½", DisplayPos: 1,
		NotesForFamily: "Verifica sulle equazioni di secondo grado",
		Color: "green", PeriodPos: 2, PeriodDesc: "Secondo Quadrimestre",
		ComponentPos: 1, ComponentDesc: "Scritto", WeightFactor: 1,
	},
	{
		SubjectID: 101, SubjectCode: "MAT", SubjectDesc: "Matematica",
		EvtID: 9002, EvtCode: "GRV1", EvtDate: "2024-02-20",
		DecimalValue: 6, DisplayValue: "6", DisplayPos: 2,
		NotesForFamily: "Interrogazione sui limiti",
		Color: "green", PeriodPos: 2, PeriodDesc: "Secondo Quadrimestre",
		ComponentPos: 2, ComponentDesc: "Orale", WeightFactor: 1,
	},
	{
		SubjectID: 102, SubjectCode: "ITA", SubjectDesc: "Italiano",
		EvtID: 9003, EvtCode: "GRV0", EvtDate: "2024-03-05",
		DecimalValue: 8, DisplayValue: "8", DisplayPos: 1,
		NotesForFamily: "Tema argomentativo",
		Color: "green", PeriodPos: 2, PeriodDesc: "Secondo Quadrimestre",
		ComponentPos: 1, ComponentDesc: "Scritto", WeightFactor: 1,
	},
	{
		SubjectID: 103, SubjectCode: "ING", SubjectDesc: "Inglese",
		EvtID: 9004, EvtCode: "GRV1", EvtDate: "2024-02-28",
		DecimalValue: 5.5, DisplayValue: "5½", DisplayPos: 1,
		NotesForFamily: "Listening comprehension",
		Color: "red", PeriodPos: 2, PeriodDesc: "Secondo Quadrimestre",
		ComponentPos: 2, ComponentDesc: "Orale", WeightFactor: 1,
	},
	{
		SubjectID: 104, SubjectCode: "STO", SubjectDesc: "Storia",
		EvtID: 9005, EvtCode: "GRV1", EvtDate: "2024-01-25",
		DecimalValue: 7, DisplayValue: "7", DisplayPos: 1,
		NotesForFamily: "Interrogazione sulla Prima Guerra Mondiale",
		Color: "green", PeriodPos: 1, PeriodDesc: "Primo Quadrimestre",
		ComponentPos: 2, ComponentDesc: "Orale", WeightFactor: 1,
	},
	{
		SubjectID: 105, SubjectCode: "FIS", SubjectDesc: "Fisica",
		EvtID: 9006, EvtCode: "GRV0", EvtDate: "2024-01-18",
		DecimalValue: 0, DisplayValue: "imp", DisplayPos: 1,
		NotesForFamily: "Impreparato", Canceled: true,
		Color: "red", PeriodPos: 1, PeriodDesc: "Primo Quadrimestre",
		ComponentPos: 1, ComponentDesc: "Scritto", WeightFactor: 1,
	},
}

var fixtureAbsences = []classeviva.Absence{
	{
		EvtID: 8001, EvtCode: "ABA0", EvtDate: "2024-03-08",
		EvtValue: "Assenza giornaliera", IsJustified: true,
		JustifReasonCode: "M", JustifReasonDesc: "Motivi di salute",
	},
	{
		EvtID: 8002, EvtCode: "ABR0", EvtDate: "2024-02-15", EvtHPos: 1,
		EvtValue: "Ritardo", IsJustified: true,
		JustifReasonCode: "T", JustifReasonDesc: "Trasporti",
	},
	{
		EvtID: 8003, EvtCode: "ABA0", EvtDate: "2024-01-22",
		EvtValue: "Assenza giornaliera", IsJustified: false,
	},
	{
		EvtID: 8004, EvtCode: "ABU0", EvtDate: "2024-01-10", EvtHPos: 5,
		EvtValue: "Uscita anticipata", IsJustified: true,
		JustifReasonCode: "F", JustifReasonDesc: "Motivi familiari",
	},
}

var fixtureAgenda = []classeviva.AgendaEvent{
	{
		EvtID: 7001, EvtCode: "AGHW",
		EvtDatetimeBegin: "2024-03-18T08:00:00+01:00",
		EvtDatetimeEnd:   "2024-03-18T09:00:00+01:00",
		ClassDesc:        "3A LICEO SCIENTIFICO", AuthorName: "Prof.ssa Ferrari",
		SubjectID: 101, SubjectCode: "MAT", SubjectDesc: "Matematica",
		EvtText: "Esercizi pag. 245 n. 12-18", HomeworkText: "Equazioni logaritmiche",
	},
	{
		EvtID: 7002, EvtCode: "AGNT",
		EvtDatetimeBegin: "2024-03-19T10:00:00+01:00",
		EvtDatetimeEnd:   "2024-03-19T11:00:00+01:00",
		ClassDesc:        "3A LICEO SCIENTIFICO", AuthorName: "Prof. Colombo",
		SubjectID: 102, SubjectCode: "ITA", SubjectDesc: "Italiano",
		EvtText: "Verifica su Leopardi",
	},
	{
		EvtID: 7003, EvtCode: "AGHW",
		EvtDatetimeBegin: "2024-03-20T09:00:00+01:00",
		EvtDatetimeEnd:   "2024-03-20T10:00:00+01:00",
		ClassDesc:        "3A LICEO SCIENTIFICO", AuthorName: "Prof.ssa Esposito",
		SubjectID: 103, SubjectCode: "ING", SubjectDesc: "Inglese",
		EvtText: "Reading: The Picture of Dorian Gray, chapter 3",
	},
	{
		EvtID: 7004, EvtCode: "AGNT",
		EvtDatetimeBegin: "2024-03-22T11:00:00+01:00",
		EvtDatetimeEnd:   "2024-03-22T13:00:00+01:00",
		ClassDesc:        "3A LICEO SCIENTIFICO", AuthorName: "Prof. Ricci",
		SubjectID: 105, SubjectCode: "FIS", SubjectDesc: "Fisica",
		EvtText: "Laboratorio: misura dell'accelerazione di gravità",
	},
	{
		EvtID: 7005, EvtCode: "AGCR",
		EvtDatetimeBegin: "2024-03-25T08:00:00+01:00",
		EvtDatetimeEnd:   "2024-03-25T14:00:00+01:00",
		ClassDesc:        "3A LICEO SCIENTIFICO", AuthorName: "Segreteria",
		EvtText: "Uscita didattica: Museo della Scienza e della Tecnologia",
	},
}

var fixtureLessons = []classeviva.Lesson{
	{
		EvtID: 6001, EvtDate: "2024-03-18", EvtHPos: 1, EvtDuration: 1,
		ClassDesc: "3A LICEO SCIENTIFICO", AuthorName: "Prof.ssa Ferrari",
		SubjectID: 101, SubjectCode: "MAT", SubjectDesc: "Matematica",
		LessonType: "Lezione", LessonArg: "Equazioni logaritmiche",
	},
	{
		EvtID: 6002, EvtDate: "2024-03-18", EvtHPos: 2, EvtDuration: 1,
		ClassDesc: "3A LICEO SCIENTIFICO", AuthorName: "Prof. Colombo",
		SubjectID: 102, SubjectCode: "ITA", SubjectDesc: "Italiano",
		LessonType: "Lezione", LessonArg: "Giacomo Leopardi: i Canti",
	},
	{
		EvtID: 6003, EvtDate: "2024-03-18", EvtHPos: 3, EvtDuration: 1,
		ClassDesc: "3A LICEO SCIENTIFICO", AuthorName: "Prof.ssa Esposito",
		SubjectID: 103, SubjectCode: "ING", SubjectDesc: "Inglese",
		LessonType: "Lezione", LessonArg: "Oscar Wilde and the Aesthetic Movement",
	},
	{
		EvtID: 6004, EvtDate: "2024-03-18", EvtHPos: 4, EvtDuration: 2,
		ClassDesc: "3A LICEO SCIENTIFICO", AuthorName: "Prof. Ricci",
		SubjectID: 105, SubjectCode: "FIS", SubjectDesc: "Fisica",
		LessonType: "Laboratorio", LessonArg: "Moto uniformemente accelerato",
	},
	{
		EvtID: 6005, EvtDate: "2024-03-18", EvtHPos: 6, EvtDuration: 1,
		ClassDesc: "3A LICEO SCIENTIFICO", AuthorName: "Prof. Moretti",
		SubjectID: 104, SubjectCode: "STO", SubjectDesc: "Storia",
		LessonType: "Lezione", LessonArg: "Il primo dopoguerra in Europa",
	},
}

var fixtureNotices = []classeviva.Notice{
	{
		PubID: 5001, PubDT: "2024-03-10T12:00:00+01:00", ReadStatus: false,
		EvtCode: "CF", CntValidFrom: "2024-03-10", CntValidTo: "2024-04-10",
		CntValidInRange: true, CntStatus: "active",
		CntTitle:    "Colloqui generali con le famiglie",
		CntCategory: "Comunicazioni", CntHasAttach: true, NeedReply: true,
	},
	{
		PubID: 5002, PubDT: "2024-03-01T09:30:00+01:00", ReadStatus: true,
		EvtCode: "CF", CntValidFrom: "2024-03-01", CntValidTo: "2024-03-31",
		CntValidInRange: true, CntStatus: "active",
		CntTitle:    "Iscrizione corsi di recupero pomeridiani",
		CntCategory: "Didattica", NeedJoin: true,
	},
	{
		PubID: 5003, PubDT: "2024-02-20T14:15:00+01:00", ReadStatus: true,
		EvtCode: "CF", CntValidFrom: "2024-02-20", CntValidTo: "2024-03-20",
		CntValidInRange: true, CntStatus: "active",
		CntTitle:    "Sciopero del personale docente - 8 marzo",
		CntCategory: "Comunicazioni",
	},
	{
		PubID: 5004, PubDT: "2024-02-05T08:00:00+01:00", ReadStatus: true,
		EvtCode: "CF", CntValidFrom: "2024-02-05", CntValidTo: "2024-02-29",
		CntValidInRange: false, CntStatus: "expired",
		CntTitle:    "Autorizzazione uscita didattica al Museo della Scienza",
		CntCategory: "Uscite", CntHasAttach: true, NeedFile: true,
	},
}

var fixtureSubjects = []classeviva.Subject{
	{
		ID: 101, Description: "Matematica", Order: 1,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 201, TeacherName: "Prof.ssa Ferrari", TeacherFirstName: "Laura", TeacherLastName: "Ferrari"},
		},
	},
	{
		ID: 102, Description: "Italiano", Order: 2,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 202, TeacherName: "Prof. Colombo", TeacherFirstName: "Andrea", TeacherLastName: "Colombo"},
		},
	},
	{
		ID: 103, Description: "Inglese", Order: 3,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 203, TeacherName: "Prof.ssa Esposito", TeacherFirstName: "Silvia", TeacherLastName: "Esposito"},
		},
	},
	{
		ID: 104, Description: "Storia", Order: 4,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 204, TeacherName: "Prof. Moretti", TeacherFirstName: "Paolo", TeacherLastName: "Moretti"},
		},
	},
	{
		ID: 105, Description: "Fisica", Order: 5,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 205, TeacherName: "Prof. Ricci", TeacherFirstName: "Davide", TeacherLastName: "Ricci"},
		},
	},
	{
		ID: 106, Description: "Scienze Naturali", Order: 6,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 206, TeacherName: "Prof.ssa Greco", TeacherFirstName: "Elena", TeacherLastName: "Greco"},
		},
	},
	{
		ID: 107, Description: "Scienze Motorie", Order: 7,
		Teachers: []classeviva.SubjectTeacher{
			{TeacherID: 207, TeacherName: "Prof. Gallo", TeacherFirstName: "Stefano", TeacherLastName: "Gallo"},
		},
	},
}

var fixturePeriods = []classeviva.Period{
	{ID: 1, Description: "Primo Quadrimestre", Start: "2023-09-01", End: "2024-01-31"},
	{ID: 2, Description: "Secondo Quadrimestre", Start: "2024-02-01", End: "2024-06-30"},
}
