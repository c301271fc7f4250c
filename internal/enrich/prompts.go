package enrich

// Prompt templates for the enrichment calls. Each template is filled with
// fmt.Sprintf; the verb order matches the method signatures in gemini.go.
//
// The tone guidance is deliberate and tuned: a community club newsletter
// for Belair and Dulwich in South East London, written like a friendly
// local coach. Edit with care.

const promptSubjectLine = `Generate a subject line for a friendly community tennis newsletter in Belair and Dulwich in South East London.

User provided this content: %s
Tone: upbeat, clear, slightly playful but not cheesy
Audience: casual tennis players, families with kids

Examples:
- 🎾 Book Your Spot: Junior Courses Start Next Week
- ☀️ Still time to join! Adult courses, junior camps & tournament
- 🔥 What's New This June: Sunday Drop-Ins and Doubles Tournament
- 🎾 Adults & Juniors: New Courses Now Open for Booking
- ☀️ Summer Tennis is Here — Courses, Camps & More
- 📅 August Courses Now Open — Find Your Level
- 🎒 Tennis Camps for Ages 4–11 — Saturdays at Dulwich Park

Return only the subject line, without quotes or numbering:`

const promptPreviewText = `Write a single preview text for a community tennis newsletter.

Requirements:
- Keep under 150 characters
- Audience: families and adults interested in local tennis.
- Tone: warm, informative, lightly enthusiastic.
- Highlight the following: %s
- Make it sound inviting, like a friendly tip from someone in the know.
- Return only ONE preview text, not multiple options

Examples:
- Wimbledon's heating up — and so are our courses, junior holiday camps, and a social doubles tournament
- New courses and fun events this July
- Summer tennis is here — join a course, camp or tournament
- Tennis in the sun? We've got courses, camps & tournaments waiting

Return only the preview text:`

const promptCategoryBlurb = `You are helping write short introductory summary text for sections in a community tennis newsletter.

Each section includes a list of courses or camps (e.g. Adults or Juniors).

Your job is to write 1-2 warm, friendly lines introducing what's on offer, just before the bullet list.

Audience: casual adult players or parents of juniors
Tone: inviting, clear, and upbeat, like a trusted local coach
Do not start with an emoji.

Here is the block: %s

Write just the introductory paragraph that should go above the bullet list. Mention timing or what's new if relevant (e.g. "courses starting this Sunday" or "holiday camps now open"). Avoid sounding too salesy.`

const promptLevelBlurb = `Generate a short, engaging description for a tennis skill level called "%s".

Requirements:
- Keep under 100 characters
- Be encouraging and motivating
- Explain what this level is for
- Use natural, friendly tone
- No emojis

Examples:
- Perfect for those new to tennis or returning after a break.
- For players who are confident rallying and ready to level up.

Return only the description (no level name, no quotes):`

const promptEventDescription = `You are writing a short, friendly description of an event block to be included in a community tennis newsletter.

User provided this event description: %s

User provided this event title: %s

Keep the key details but make it sound more inviting and natural.

Style: max 3 sentences, with clear mention of date, time, and location
Include: a short summary of the vibe or activity (e.g. social doubles, holiday camps, drop-ins)
Audience: adult recreational tennis players and parents of junior players in South London
Tone: warm, clear, and lightly enthusiastic (not too salesy or overhyped). Limited emojis in the description

Examples:
- Celebrate the finals weekend with a casual mixed doubles session on Sunday, 14 July @ Belair Park, 3-5pm.
- Join us for a fun adult doubles tournament at Belair Park on Sunday, 14 July @ Belair Park, 3-5pm. Whether you're coming solo or with a partner, it's a great way to meet other players and enjoy some friendly matchplay in the sun.

Return only the rewritten event description:`

const promptNewsletterSummary = `Write a short introductory paragraph (max 2 lines) for a friendly tennis newsletter.

Audience: local players and parents in South London
Tone: welcoming, friendly, lightly seasonal
Newsletter includes: %s

Mention Wimbledon, other grand slam tournaments or the weather if it's relevant. Avoid emojis at the start, but 1 is fine elsewhere. Make it sound like a friendly coach giving you a quick update.

Examples:
- Wimbledon's heating up — and so are our courses, junior holiday camps, and a social doubles tournament
- New courses and fun events this July
- Summer tennis is here — join a course, camp or tournament
- Tennis in the sun? We've got courses, camps & tournaments waiting

Return only the summary:`
