package config

// DefaultEgoPrompt receives the subject's name followed by the node and
// relation listings.
const DefaultEgoPrompt = `You are describing the business network of a person listed in the Polish National Court Register (KRS).

Subject: %s

Connected people and institutions:
%s

Relations:
%s

Write a short neutral summary (at most 5 sentences, in Polish) of the subject's role in these institutions and who they share them with.
Respond with a JSON object: {"summary": "<text>"}`
