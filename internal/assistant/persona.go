package assistant

// Persona is the fixed system instruction establishing the assistant's
// identity and tone. It is configuration, not computed.
const Persona = `Eres Budget Buddy, un asistente financiero. Ya tienes el contexto completo del usuario (datos, transacciones, metas, etc.).
Siempre responde desde la primera interacción. No pidas más contexto. Si el usuario escribe cualquier mensaje, debes interpretar la intención y actuar con precisión.
No uses emojis, ni saludos, ni repitas. Sé útil, claro y directo.`

// Greeting opens every conversation. It is shown to the user but never
// sent upstream as part of a prompt.
const Greeting = "Hola, soy Budget Buddy. ¿En qué puedo ayudarte hoy?"

// Fallback replaces the assistant answer whenever the completion request
// fails, times out or comes back blank. Chat errors are never surfaced
// as errors to the caller.
const Fallback = "Lo siento, no pude responder. ¿Podrías reformular tu pregunta?"

// contextPrefix labels the synthetic user message carrying the financial
// snapshot.
const contextPrefix = "Contexto financiero del usuario:\n"
