package session

const helpText = `Commands:
  show / list                  - list tasks
  add                          - enter Add mode; then use t/d/e lines, 'done' to leave
  delete <number|exact name>   - delete a task
  complete <number|exact name> - mark a task done (also: done <number|exact name>)
  edit <number|exact name> [n/NAME] [d/YYYY-MM-DD] [t/HHmm-HHmm]
      Rules:
        - Todo: only n/ allowed
        - Deadline: n/, d/ allowed
        - Event: n/, d/, and t/ allowed (t/ must be HHmm-HHmm, start before end)
  find <keyword>               - list tasks whose name contains the keyword
  help                         - show this help
  exit / quit                  - exit the program

Names shared by several tasks must be addressed by number.`
