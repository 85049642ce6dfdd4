package openai

const analyzePrompt = `You are an assistant that analyzes personal voice diary transcripts.
Return a valid JSON with fields:

- title – short, 3–7 words, like a journal entry title.
- mood_label – one word in English describing the dominant mood (e.g. "anxious", "calm", "angry", "sad", "hopeful").
- tags – 2–6 short tags (1–2 words each), summarizing topics and feelings.
- insights – 2–3 short supportive observations in language of the transcript (1–2 sentences each), without medical terms or diagnoses.

Be gentle and neutral, like a thoughtful friend.

Transcript (in language that is spoken):
`

const formatPrompt = `You receive a raw transcript from automatic speech recognition.

The text may contain multiple languages in one message (code-switching).

Your job:
- Preserve every word, in every language, exactly as in the original.
- Do NOT translate anything.
- Do NOT drop sentences or merge languages.
- Do NOT summarize or shorten the content.
- Only:
  - fix basic spacing issues,
  - add natural punctuation and capitalization,
  - optionally use ALL CAPS if the speaker is shouting.
- If the speaker switches between languages, keep that switch exactly in the output.
- If you are unsure, prefer to keep the text as-is instead of modifying it.

Fix grammar, spelling, and punctuation according to the conventions of EACH language used.
Smooth out stutters and filler words unless meaningful.
Use punctuation to reflect natural intonation (long pauses → "…", abrupt shifts → "—").
Do NOT add labels like (laughs), (sighs), (pause).
Do NOT add commentary, explanations, or interpretations.

Output ONLY the final cleaned diary text with ALL languages preserved in their original order, nothing else.`
