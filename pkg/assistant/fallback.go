package assistant

import "strings"

// DocumentFallback answers a document-producing smart action when no LLM is
// reachable.
const DocumentFallback = "אין כרגע חיבור לשירות ה-AI, אז אי אפשר להכין את המסמך אוטומטית. נסי שוב מאוחר יותר, או כתבי \"התנגדות\" כדי לקבל את השלבים להכנה ידנית."

// FallbackResponse answers a chat message without an LLM by keyword
// matching. The answers are canned but domain-aware: urgent-task listings,
// the objection playbook, and the bureaucracy status board.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "דחוף") || strings.Contains(lower, "היום") {
		return "המשימות הדחופות היום:\n• כרמית - סמינר פסיכולוגיה (דדליין היום!)\n• PAIR Finance - התנגדות (נשאר יומיים)\n• ביטוח בריאות TK - הגשת מסמכים\n\nהתחילי עם כרמית - זה הכי דחוף!"
	}

	if strings.Contains(lower, "pair") || strings.Contains(lower, "התנגדות") {
		return "בשביל PAIR Finance:\n1. אל תודי בחוב\n2. בקשי הוכחות מפורטות\n3. שלחי בדואר רשום\n4. שמרי את כל המסמכים\n\nיש לי תבנית מכתב התנגדות - רוצה לראות אותה?"
	}

	if strings.Contains(lower, "בירוקרטיה") {
		return "מצב הבירוקרטיה:\n• רישום נישואין - צריך לברר סטטוס\n• TK ביטוח בריאות - דחוף!\n• LEA אישור שהייה - בתהליך\n• Jobcenter - מאושר ✓"
	}

	return "הבנתי את השאלה שלך. איך אני יכולה לעזור לך בפירוט יותר? אני יכולה לסייע עם:\n• ניהול המשימות הדחופות\n• הכנת מכתבי התנגדות\n• מעקב אחר בירוקרטיה\n• ייעוץ כלכלי"
}
