package notify

import (
	"fmt"
	"strings"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

// RenderVariables substitutes template variables with appointment data.
//
// Supported: {client_name}, {phone}, {email}, {date}, {time}, {service},
// {staff}.
func RenderVariables(body string, ap *models.Appointment, staffName string) string {
	if body == "" {
		return body
	}

	replacements := map[string]string{
		"{client_name}": ap.Client.FullName,
		"{phone}":       ap.Client.Phone,
		"{email}":       ap.Client.Email,
		"{date}":        ap.Start.Format("02/01/2006"),
		"{time}":        ap.Start.Format("15:04"),
		"{service}":     ap.Service.Name,
		"{staff}":       staffName,
	}

	result := body
	for variable, value := range replacements {
		result = strings.ReplaceAll(result, variable, value)
	}
	return result
}

// --------------------------------------------------
// Default message bodies
// --------------------------------------------------

func BookedSMS(ap *models.Appointment, staffName string) string {
	return fmt.Sprintf(
		"Γεια σας %s! Το ραντεβού σας επιβεβαιώθηκε για %s στις %s. Υπηρεσία: %s. Θα σας εξυπηρετήσει: %s.",
		ap.Client.FullName,
		ap.Start.Format("02/01/2006"),
		ap.Start.Format("15:04"),
		ap.Service.Name,
		staffName,
	)
}

func BookedEmail(ap *models.Appointment, staffName string) (subject, body string) {
	subject = fmt.Sprintf("Επιβεβαίωση Ραντεβού - %s %s",
		ap.Start.Format("02/01/2006"), ap.Start.Format("15:04"))
	body = fmt.Sprintf(
		"Αγαπητέ/ή %s,\n\nΤο ραντεβού σας έχει επιβεβαιωθεί!\n\nΗμερομηνία: %s\nΏρα: %s\nΥπηρεσία: %s\nΘεραπευτής: %s\n\nΣας περιμένουμε!\n",
		ap.Client.FullName,
		ap.Start.Format("02/01/2006"),
		ap.Start.Format("15:04"),
		ap.Service.Name,
		staffName,
	)
	return subject, body
}

func ReminderSMS(ap *models.Appointment, staffName string) string {
	return fmt.Sprintf(
		"Υπενθύμιση! %s, έχετε ραντεβού αύριο %s στις %s. Υπηρεσία: %s. Σας περιμένουμε!",
		ap.Client.FullName,
		ap.Start.Format("02/01/2006"),
		ap.Start.Format("15:04"),
		ap.Service.Name,
	)
}

func ReminderEmail(ap *models.Appointment, staffName string) (subject, body string) {
	subject = fmt.Sprintf("Υπενθύμιση Ραντεβού - %s %s",
		ap.Start.Format("02/01/2006"), ap.Start.Format("15:04"))
	body = fmt.Sprintf(
		"Αγαπητέ/ή %s,\n\nΘέλουμε να σας υπενθυμίσουμε το ραντεβού σας:\n\nΗμερομηνία: %s\nΏρα: %s\nΥπηρεσία: %s\nΘεραπευτής: %s\n\nΣας περιμένουμε!\n",
		ap.Client.FullName,
		ap.Start.Format("02/01/2006"),
		ap.Start.Format("15:04"),
		ap.Service.Name,
		staffName,
	)
	return subject, body
}
