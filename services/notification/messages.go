package notification

import (
	"fmt"
	"strings"
)

// Email template base names; the commerce language is appended.
const (
	TemplateYourTurn           = "your-turn"
	TemplateItsYourTurn        = "its-your-turn"
	TemplateCsat               = "csat"
	TemplateYourReserve        = "your-reserve"
	TemplateYourReserveConfirm = "your-reserve-confirm"
)

func TemplateName(base, language string) string {
	return base + "-" + normalizeLanguage(language)
}

type messageKey int

const (
	msgItsYourTurn messageKey = iota
	msgOneLeft
	msgFiveLeft
	msgSurvey
	msgAttentionCancelled
	msgBookingCreated
	msgBookingConfirm
	msgBookingCancelled
	msgPostAttentionSubject
)

var messages = map[string]map[messageKey]string{
	"es": {
		msgItsYourTurn:          "¡Es tu turno! Tu número %d está siendo llamado en el módulo %s.",
		msgOneLeft:              "¡Falta poco! Solo queda 1 persona antes de ti. Se está atendiendo el número %d.",
		msgFiveLeft:             "Quedan 5 personas antes de ti. Se está atendiendo el número %d.",
		msgSurvey:               "Gracias por visitar %s. Cuéntanos cómo te atendimos: %s",
		msgAttentionCancelled:   "Tu atención número %d fue cancelada. Puedes sacar un nuevo número aquí: %s",
		msgBookingCreated:       "Tu reserva en %s para el %s%s quedó registrada. Detalle: %s",
		msgBookingConfirm:       "Recuerda tu reserva en %s para el %s%s. Detalle: %s",
		msgBookingCancelled:     "Tu reserva en %s para el %s fue cancelada. Puedes reservar nuevamente aquí: %s",
		msgPostAttentionSubject: "Gracias por tu visita a %s",
	},
	"pt": {
		msgItsYourTurn:          "É a sua vez! Seu número %d está sendo chamado no guichê %s.",
		msgOneLeft:              "Falta pouco! Só há 1 pessoa antes de você. Estamos atendendo o número %d.",
		msgFiveLeft:             "Há 5 pessoas antes de você. Estamos atendendo o número %d.",
		msgSurvey:               "Obrigado por visitar %s. Conte-nos como foi o seu atendimento: %s",
		msgAttentionCancelled:   "Seu atendimento número %d foi cancelado. Você pode retirar um novo número aqui: %s",
		msgBookingCreated:       "Sua reserva em %s para %s%s foi registrada. Detalhes: %s",
		msgBookingConfirm:       "Lembre-se da sua reserva em %s para %s%s. Detalhes: %s",
		msgBookingCancelled:     "Sua reserva em %s para %s foi cancelada. Você pode reservar novamente aqui: %s",
		msgPostAttentionSubject: "Obrigado pela sua visita a %s",
	},
	"en": {
		msgItsYourTurn:          "It's your turn! Number %d is being called at desk %s.",
		msgOneLeft:              "Almost there! Only 1 person before you. Now serving number %d.",
		msgFiveLeft:             "There are 5 people before you. Now serving number %d.",
		msgSurvey:               "Thanks for visiting %s. Tell us how we did: %s",
		msgAttentionCancelled:   "Your ticket number %d was cancelled. You can get a new one here: %s",
		msgBookingCreated:       "Your booking at %s on %s%s is registered. Details: %s",
		msgBookingConfirm:       "Reminder of your booking at %s on %s%s. Details: %s",
		msgBookingCancelled:     "Your booking at %s on %s was cancelled. You can book again here: %s",
		msgPostAttentionSubject: "Thanks for visiting %s",
	},
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if _, ok := messages[language]; ok {
		return language
	}
	return "es"
}

func render(language string, key messageKey, args ...interface{}) string {
	return fmt.Sprintf(messages[normalizeLanguage(language)][key], args...)
}

func ItsYourTurnMessage(language string, number int, module string) string {
	return render(language, msgItsYourTurn, number, module)
}

func OneLeftMessage(language string, servingNumber int) string {
	return render(language, msgOneLeft, servingNumber)
}

func FiveLeftMessage(language string, servingNumber int) string {
	return render(language, msgFiveLeft, servingNumber)
}

func SurveyMessage(language, commerce, link string) string {
	return render(language, msgSurvey, commerce, link)
}

func AttentionCancelledMessage(language string, number int, link string) string {
	return render(language, msgAttentionCancelled, number, link)
}

// blockSuffix renders " 9:00 - 9:30" when a block is known.
func blockSuffix(hourFrom, hourTo string) string {
	if hourFrom == "" {
		return ""
	}
	return fmt.Sprintf(" %s - %s", hourFrom, hourTo)
}

func BookingCreatedMessage(language, commerce, date, hourFrom, hourTo, link string) string {
	return render(language, msgBookingCreated, commerce, date, blockSuffix(hourFrom, hourTo), link)
}

func BookingConfirmMessage(language, commerce, date, hourFrom, hourTo, link string) string {
	return render(language, msgBookingConfirm, commerce, date, blockSuffix(hourFrom, hourTo), link)
}

func BookingCancelledMessage(language, commerce, date, link string) string {
	return render(language, msgBookingCancelled, commerce, date, link)
}

func PostAttentionSubject(language, commerce string) string {
	return render(language, msgPostAttentionSubject, commerce)
}

var postAttentionHTML = map[string]string{
	"es": `<div><img src="{{logo}}" alt="{{commerce}}"/><p>Gracias por visitarnos en {{commerce}}. Adjuntamos las indicaciones para después de tu atención.</p></div>`,
	"pt": `<div><img src="{{logo}}" alt="{{commerce}}"/><p>Obrigado pela visita a {{commerce}}. Em anexo seguem as orientações pós-atendimento.</p></div>`,
	"en": `<div><img src="{{logo}}" alt="{{commerce}}"/><p>Thanks for visiting {{commerce}}. Your after-care instructions are attached.</p></div>`,
}

func PostAttentionHTML(language, commerce, logo string) string {
	html := postAttentionHTML[normalizeLanguage(language)]
	return strings.NewReplacer("{{logo}}", logo, "{{commerce}}", commerce).Replace(html)
}
