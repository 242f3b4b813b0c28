package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReciboPagoData datos para la plantilla del email de recibo
type ReciboPagoData struct {
	ReparacionId   uint
	ClienteNombre  string
	Dispositivo    string
	Importe        float64
	MetodoPago     string
	FechaPago      string
	SeguimientoUrl string
}

var reciboTmpl = template.Must(template.New("recibo").Parse(`
<h2>Pago recibido - Reparación #{{.ReparacionId}}</h2>
<p>Hola {{.ClienteNombre}},</p>
<p>Hemos recibido el pago de tu reparación <b>{{.Dispositivo}}</b>.</p>
<ul>
  <li>Importe: {{printf "%.2f" .Importe}} €</li>
  <li>Método: {{.MetodoPago}}</li>
  <li>Fecha: {{.FechaPago}}</li>
</ul>
<p>Puedes consultar el estado en <a href="{{.SeguimientoUrl}}">{{.SeguimientoUrl}}</a></p>
<p>Gracias por confiar en ANDROTECH</p>
`))

// RecordatorioPagoData datos para el aviso de pago pendiente
type RecordatorioPagoData struct {
	ReparacionId   uint
	ClienteNombre  string
	Dispositivo    string
	Importe        float64
	SeguimientoUrl string
}

var recordatorioTmpl = template.Must(template.New("recordatorio").Parse(`
<h2>Reparación #{{.ReparacionId}} lista para recoger</h2>
<p>Hola {{.ClienteNombre}},</p>
<p>Tu reparación <b>{{.Dispositivo}}</b> está terminada y pendiente de pago
({{printf "%.2f" .Importe}} €).</p>
<p>Puedes pagar online desde <a href="{{.SeguimientoUrl}}">{{.SeguimientoUrl}}</a>
o pasar por el taller.</p>
<p>Gracias por confiar en ANDROTECH</p>
`))

// SendRecordatorioPagoEmail avisa al cliente de una reparación terminada sin pagar.
func SendRecordatorioPagoEmail(to string, data RecordatorioPagoData) {
	go func() {
		var body bytes.Buffer
		if err := recordatorioTmpl.Execute(&body, data); err != nil {
			log.Printf("Error al renderizar plantilla de recordatorio: %v", err)
			return
		}
		sendHTML(to, "Reparación #"+strconv.Itoa(int(data.ReparacionId))+" pendiente de pago", body.String(), nil)
	}()
}

// Attachment fichero adjunto en memoria (factura PDF, QR...)
type Attachment struct {
	Filename string
	Data     []byte
}

// SendReciboPagoEmail envía el recibo de pago (async para no retrasar la respuesta).
func SendReciboPagoEmail(to string, data ReciboPagoData, adjuntos []Attachment) {
	go func() {
		var body bytes.Buffer
		if err := reciboTmpl.Execute(&body, data); err != nil {
			log.Printf("Error al renderizar plantilla de recibo: %v", err)
			return
		}
		sendHTML(to, "Recibo de pago - Reparación #"+strconv.Itoa(int(data.ReparacionId)), body.String(), adjuntos)
	}()
}

func sendHTML(to, subject, htmlBody string, adjuntos []Attachment) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	if host == "" || from == "" {
		log.Println("SMTP sin configurar, no se envía el email")
		return
	}

	port, _ := strconv.Atoi(portStr)
	if port == 0 {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	for _, adj := range adjuntos {
		adj := adj
		m.Attach(adj.Filename, gomail.Rename(adj.Filename), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(adj.Data))
			return err
		}))
	}

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Error al enviar email a %s: %v", to, err)
	} else {
		log.Printf("Email enviado a %s", to)
	}
}
