// Package fixture provides an in-memory Store backed by static sample data.
//
// It is the default backend when no database is configured and is also used
// by tests and examples. Chat history is kept in a per-user slice for the
// process lifetime.
package fixture

import (
	"context"
	"sync"

	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// Store serves the built-in sample collections.
type Store struct {
	tasks       []storage.AcademicTask
	debts       []storage.Debt
	bureaucracy []storage.BureaucracyItem
	clients     []storage.Client

	mu   sync.Mutex
	chat map[string][]storage.ChatMessage
}

// NewStore creates a fixture store populated with the sample data.
func NewStore() *Store {
	return &Store{
		tasks:       Tasks(),
		debts:       Debts(),
		bureaucracy: Bureaucracy(),
		clients:     Clients(),
		chat:        make(map[string][]storage.ChatMessage),
	}
}

// ListTasks returns a copy of the sample academic tasks.
func (s *Store) ListTasks(ctx context.Context) ([]storage.AcademicTask, error) {
	return append([]storage.AcademicTask{}, s.tasks...), nil
}

// ListDebts returns a copy of the sample debt cases.
func (s *Store) ListDebts(ctx context.Context) ([]storage.Debt, error) {
	return append([]storage.Debt{}, s.debts...), nil
}

// ListBureaucracy returns a copy of the sample bureaucracy items.
func (s *Store) ListBureaucracy(ctx context.Context) ([]storage.BureaucracyItem, error) {
	return append([]storage.BureaucracyItem{}, s.bureaucracy...), nil
}

// ListClients returns a copy of the sample clients.
func (s *Store) ListClients(ctx context.Context) ([]storage.Client, error) {
	return append([]storage.Client{}, s.clients...), nil
}

// SaveChatMessage appends to the in-memory chat log.
func (s *Store) SaveChatMessage(ctx context.Context, userID, role, content string, meta storage.ChatMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat[userID] = append(s.chat[userID], storage.ChatMessage{Role: role, Content: content})
	return nil
}

// ChatHistory returns the last messages for a user, oldest first.
func (s *Store) ChatHistory(ctx context.Context, userID string, limit int) ([]storage.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.chat[userID]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return append([]storage.ChatMessage{}, history...), nil
}

// Close is a no-op for the fixture store.
func (s *Store) Close() error { return nil }

// Tasks returns the sample academic tasks.
func Tasks() []storage.AcademicTask {
	return []storage.AcademicTask{
		{ID: 1, Project: "תזת מאסטר - מרב", Client: "מרב שטרן", Type: "תזה", Status: "בעבודה", Progress: 65, Deadline: "2025-10-30", Currency: "₪", Value: 2500, Priority: "בינוני", Action: "כתיבת פרק 3"},
		{ID: 2, Project: "סמינר פסיכולוגיה - כרמית", Client: "כרמית לוי", Type: "סמינר", Status: "לסיום", Progress: 85, Deadline: "2025-09-24", Currency: "₪", Value: 800, Priority: "דחוף", Action: "סיכום וביבליוגרפיה"},
		{ID: 3, Project: "מחקר איכותני - יונתן", Client: "יונתן כהן", Type: "מחקר", Status: "הצעת מחקר", Progress: 30, Deadline: "2025-11-15", Currency: "₪", Value: 1500, Priority: "בינוני", Action: "איסוף נתונים"},
		{ID: 4, Project: "עבודה סמינריונית - שירה", Client: "שירה אברהם", Type: "סמינר", Status: "בעבודה", Progress: 45, Deadline: "2025-10-20", Currency: "₪", Value: 650, Priority: "בינוני", Action: "ביקורת ספרות"},
		{ID: 5, Project: "פרויקט גמר - אלי", Client: "אלי רוזנברג", Type: "פרויקט", Status: "טיוטה", Progress: 70, Deadline: "2025-12-01", Currency: "₪", Value: 1200, Priority: "נמוך", Action: "עריכה"},
		{ID: 6, Project: "מאמר לפרסום - ד\"ר ברק", Client: "ד\"ר דוד ברק", Type: "מאמר", Status: "הגשה", Progress: 95, Deadline: "2025-10-05", Currency: "₪", Value: 3000, Priority: "גבוה", Action: "הגשה לכתב עת"},
		{ID: 7, Project: "הצעת מחקר - רינה", Client: "רינה פרידמן", Type: "הצעה", Status: "בעבודה", Progress: 55, Deadline: "2025-11-30", Currency: "₪", Value: 900, Priority: "בינוני", Action: "כתיבת מתודולוגיה"},
		{ID: 8, Project: "סקירת ספרות - משה", Client: "משה גולדשטיין", Type: "סקירה", Status: "בעבודה", Progress: 40, Deadline: "2025-10-15", Currency: "₪", Value: 500, Priority: "גבוה", Action: "הרחבת מקורות"},
		{ID: 9, Project: "תרגום מחקר - גרמנית", Client: "אוני' תל אביב", Type: "תרגום", Status: "בעבודה", Progress: 25, Deadline: "2025-12-15", Currency: "₪", Value: 800, Priority: "נמוך", Action: "תרגום פרק 2"},
		{ID: 10, Project: "ייעוץ סטטיסטי - נועה", Client: "נועה בן דוד", Type: "ייעוץ", Status: "בעבודה", Progress: 60, Deadline: "2025-10-10", Currency: "₪", Value: 400, Priority: "גבוה", Action: "ניתוח SPSS"},
		{ID: 11, Project: "עריכת תזה - גרמנית", Client: "מרקו שמידט", Type: "עריכה", Status: "בעבודה", Progress: 80, Deadline: "2025-10-25", Currency: "€", Value: 150, Priority: "בינוני", Action: "עריכה סופית"},
		{ID: 12, Project: "כתיבת CV אקדמי", Client: "ענת מור", Type: "כתיבה", Status: "הושלם", Progress: 100, Deadline: "2025-09-20", Currency: "₪", Value: 300, Priority: "הושלם", Action: "נמסר ללקוח"},
		{ID: 13, Project: "הכנת מצגת - אנגלית", Client: "רון כץ", Type: "מצגת", Status: "בעבודה", Progress: 35, Deadline: "2025-10-12", Currency: "₪", Value: 450, Priority: "גבוה", Action: "עיצוב סלידים"},
		{ID: 14, Project: "ביקורת עמיתים", Client: "כתב עת במדעי החברה", Type: "ביקורת", Status: "בעבודה", Progress: 20, Deadline: "2025-11-05", Currency: "₪", Value: 600, Priority: "בינוני", Action: "קריאה וניתוח"},
		{ID: 15, Project: "סדנת כתיבה אקדמית", Client: "המכללה האקדמית", Type: "הדרכה", Status: "מתוכנן", Progress: 10, Deadline: "2025-12-20", Currency: "₪", Value: 1800, Priority: "נמוך", Action: "הכנת חומרים"},
	}
}

// Debts returns the sample debt cases.
func Debts() []storage.Debt {
	return []storage.Debt{
		{ID: 1, Creditor: "PAIR Finance", Company: "Vodafone", Amount: 89.12, Currency: "€", CaseNumber: "PF2024-8901", Status: "פתוח", Deadline: "2025-09-26", Action: "כתיבת מכתב התנגדות", Priority: "דחוף"},
		{ID: 2, Creditor: "Creditreform", Company: "Deutsche Telekom", Amount: 156.45, Currency: "€", CaseNumber: "CR2024-1564", Status: "התראה", Deadline: "2025-10-01", Action: "בירור החוב", Priority: "גבוה"},
		{ID: 3, Creditor: "רשות האכיפה והגביה", Company: "עיריית ירושלים", Amount: 1250, Currency: "₪", CaseNumber: "EA2024-3456", Status: "בהתנגדות", Deadline: "2025-10-15", Action: "המתנה לתשובה", Priority: "בינוני"},
		{ID: 4, Creditor: "EOS Germany", Company: "Amazon", Amount: 234.78, Currency: "€", CaseNumber: "EOS2024-7890", Status: "פתוח", Deadline: "2025-10-08", Action: "בקשת פירוט החוב", Priority: "גבוה"},
		{ID: 5, Creditor: "משרד עורכי דין כהן ושות'", Company: "בזק בינלאומי", Amount: 890, Currency: "₪", CaseNumber: "KS2024-5678", Status: "פתוח", Deadline: "2025-09-30", Action: "יצירת קשר", Priority: "דחוף"},
		{ID: 6, Creditor: "Arvato Financial", Company: "Otto Group", Amount: 67.34, Currency: "€", CaseNumber: "AF2024-2345", Status: "נסגר", Deadline: "2025-08-15", Action: "הושלם", Priority: "סגור"},
		{ID: 7, Creditor: "רשות המיסים", Company: "מס הכנסה", Amount: 3200, Currency: "₪", CaseNumber: "TAX2024-9876", Status: "בהסדר", Deadline: "2025-11-30", Action: "תשלום חודשי", Priority: "בינוני"},
		{ID: 8, Creditor: "Inkasso Moskowitz", Company: "הוט מובייל", Amount: 2015, Currency: "₪", CaseNumber: "IM2024-4567", Status: "פתוח", Deadline: "2025-10-05", Action: "הצעת פשרה", Priority: "גבוה"},
	}
}

// Bureaucracy returns the sample bureaucracy items.
func Bureaucracy() []storage.BureaucracyItem {
	return []storage.BureaucracyItem{
		{ID: 1, Task: "רישום נישואין", Authority: "Standesamt Berlin", Status: "בהמתנה", Deadline: "2025-10-15", Action: "בירור סטטוס בקשה", Priority: "גבוה"},
		{ID: 2, Task: "ביטוח בריאות - אוריון", Authority: "TK", Status: "טרם פתור", Deadline: "2025-09-30", Action: "הגשת מסמכים", Priority: "דחוף"},
		{ID: 3, Task: "בקשת אישור שהייה", Authority: "LEA Berlin", Status: "בהליך", Deadline: "2025-11-01", Action: "מעקב אחר בקשה", Priority: "בינוני"},
		{ID: 4, Task: "דיווח Bürgergeld", Authority: "Jobcenter", Status: "מאושר", Deadline: "2025-10-31", Action: "דיווח חודשי", Priority: "נמוך"},
		{ID: 5, Task: "חידוש דרכון ישראלי", Authority: "הקונסוליה בברלין", Status: "בהליך", Deadline: "2025-12-15", Action: "המתנה לתור", Priority: "בינוני"},
		{ID: 6, Task: "אישור לימודים", Authority: "Universität Berlin", Status: "מאושר", Deadline: "2025-09-25", Action: "קבלת אישור", Priority: "הושלם"},
		{ID: 7, Task: "בקשת מלגה", Authority: "DAAD", Status: "הוגש", Deadline: "2025-11-30", Action: "המתנה לתשובה", Priority: "נמוך"},
		{ID: 8, Task: "רישום כתובת", Authority: "Bürgeramt", Status: "מעודכן", Deadline: "2025-09-20", Action: "הושלם", Priority: "סגור"},
		{ID: 9, Task: "בקשת העברת קצבת ילדים", Authority: "Familienkasse", Status: "בהליך", Deadline: "2025-10-20", Action: "המתנה לאישור", Priority: "גבוה"},
		{ID: 10, Task: "פטור מביטוח חובה", Authority: "GEZ", Status: "נדחה", Deadline: "2025-09-28", Action: "הגשת ערעור", Priority: "דחוף"},
		{ID: 11, Task: "אישור הכנסות לדירה", Authority: "Vermietungsgesellschaft", Status: "נדרש", Deadline: "2025-10-10", Action: "הכנת מסמכים", Priority: "גבוה"},
		{ID: 12, Task: "בקשת WBS", Authority: "Wohnungsamt", Status: "בהליך", Deadline: "2025-11-15", Action: "המתנה לעדכון", Priority: "בינוני"},
	}
}

// Clients returns the sample clients.
func Clients() []storage.Client {
	return []storage.Client{
		{ID: 1, Name: "מרב שטרן", Email: "merav.stern@gmail.com", Phone: "050-1234567", Type: "סטודנט מ.א", University: "אוניברסיטת חיפה", Field: "פסיכולוגיה"},
		{ID: 2, Name: "כרמית לוי", Email: "carmit.l@walla.com", Phone: "052-9876543", Type: "סטודנט ב.א", University: "אוניברסיטת בר אילן", Field: "חינוך"},
		{ID: 3, Name: "יונתן כהן", Email: "yonatan.cohen@mail.tau.ac.il", Phone: "054-5556789", Type: "דוקטורנט", University: "אוניברסיטת תל אביב", Field: "סוציולוגיה"},
		{ID: 4, Name: "שירה אברהם", Email: "shira.av@gmail.com", Phone: "050-1111222", Type: "סטודנט מ.א", University: "האוניברסיטה העברית", Field: "מדעי המדינה"},
		{ID: 5, Name: "אלי רוזנברג", Email: "eli.rosen@student.bgu.ac.il", Phone: "052-3334445", Type: "סטודנט ב.א", University: "אוניברסיטת בן גוריון", Field: "כלכלה"},
		{ID: 6, Name: "ד\"ר דוד ברק", Email: "david.barak@research.org", Phone: "03-6667778", Type: "חוקר בכיר", University: "מכון וייצמן", Field: "מדעי החברה"},
		{ID: 7, Name: "רינה פרידמן", Email: "rina.f@technion.ac.il", Phone: "054-8889990", Type: "סטודנט מ.א", University: "הטכניון", Field: "ניהול טכנולוגיה"},
		{ID: 8, Name: "משה גולדשטיין", Email: "moshe.gold@openu.ac.il", Phone: "050-7776665", Type: "סטודנט מ.א", University: "האוניברסיטה הפתוחה", Field: "היסטוריה"},
	}
}
