// Command lafter classifies video titles as comedy performances.
//
// Subcommands cover single-title classification (rule/model and LLM),
// CSV inference, training dataset assembly from D1 exports, the SQLite
// candidate queue, batch passes over that queue, the HTTP API, and
// environment checks.
package main
