// ABOUTME: Display labels for the two supported interface languages
// ABOUTME: Enum codes are stored; these strings are only ever rendered
package viz

import "github.com/ostwick/crm/models"

// Labels holds the rendered strings for one language.
type Labels struct {
	Title            string
	TotalClients     string
	OpenNegotiations string
	WonRevenue       string
	Upcoming         string
	NoUpcoming       string
	Pipeline         string
	UnknownClient    string

	AppointmentTypes map[models.AppointmentType]string
	Statuses         map[models.NegotiationStatus]string
}

var english = Labels{
	Title:            "Dashboard",
	TotalClients:     "Total Clients",
	OpenNegotiations: "Open Negotiations",
	WonRevenue:       "Total Revenue (Won)",
	Upcoming:         "Upcoming Appointments",
	NoUpcoming:       "No upcoming appointments.",
	Pipeline:         "Negotiations by Status",
	UnknownClient:    "Unknown Client",
	AppointmentTypes: map[models.AppointmentType]string{
		models.AppointmentLocalVisit:      "Local Visit",
		models.AppointmentVideoConference: "Video Conference",
		models.AppointmentPhoneCall:       "Phone/WhatsApp Call",
	},
	Statuses: map[models.NegotiationStatus]string{
		models.StatusOpen: "Open",
		models.StatusWon:  "Won",
		models.StatusLost: "Lost",
	},
}

var portuguese = Labels{
	Title:            "Painel",
	TotalClients:     "Total de Clientes",
	OpenNegotiations: "Negociações Abertas",
	WonRevenue:       "Receita Total (Ganhas)",
	Upcoming:         "Próximos Compromissos",
	NoUpcoming:       "Nenhum compromisso futuro.",
	Pipeline:         "Negociações por Status",
	UnknownClient:    "Cliente Desconhecido",
	AppointmentTypes: map[models.AppointmentType]string{
		models.AppointmentLocalVisit:      "Visita Local",
		models.AppointmentVideoConference: "Videoconferência",
		models.AppointmentPhoneCall:       "Ligação/WhatsApp",
	},
	Statuses: map[models.NegotiationStatus]string{
		models.StatusOpen: "Aberta",
		models.StatusWon:  "Ganha",
		models.StatusLost: "Perdida",
	},
}

// LabelsFor returns the labels for a language code, English by default.
func LabelsFor(language string) Labels {
	if language == models.LanguagePortuguese {
		return portuguese
	}
	return english
}

// AppointmentType renders an appointment type, falling back to the raw code.
func (l Labels) AppointmentType(t models.AppointmentType) string {
	if s, ok := l.AppointmentTypes[t]; ok {
		return s
	}
	return string(t)
}

// Status renders a negotiation status, falling back to the raw code.
func (l Labels) Status(s models.NegotiationStatus) string {
	if label, ok := l.Statuses[s]; ok {
		return label
	}
	return string(s)
}
